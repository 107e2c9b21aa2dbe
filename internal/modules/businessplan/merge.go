package businessplan

import (
	"gorm.io/datatypes"

	types "github.com/yungbote/cemse-backend/internal/domain/businessplan"
	"github.com/yungbote/cemse-backend/internal/pkg/pointers"
)

// FromInput builds a new record from a create input.
func FromInput(in types.PlanInput) types.BusinessPlan {
	return Merge(types.BusinessPlan{}, in)
}

// Merge overlays the supplied fields of in onto a copy of existing. Nested
// sub-records merge key by key, so a partial canvas keeps its sibling fields.
func Merge(existing types.BusinessPlan, in types.PlanInput) types.BusinessPlan {
	out := clonePlan(existing)

	setString(&out.OwnerID, in.OwnerID)
	if in.Stage != nil {
		out.Stage = *in.Stage
	}
	setString(&out.Title, in.Title)
	setString(&out.Description, in.Description)
	setString(&out.Industry, in.Industry)

	setFloat(&out.FundingGoal, in.FundingGoal)
	setFloat(&out.CurrentFunding, in.CurrentFunding)
	if in.TeamSize != nil {
		out.TeamSize = *in.TeamSize
	}
	setFloat(&out.MarketSize, in.MarketSize)

	setString(&out.TargetMarket, in.TargetMarket)
	setString(&out.ProblemStatement, in.ProblemStatement)
	setString(&out.Solution, in.Solution)
	setString(&out.ValueProposition, in.ValueProposition)
	setString(&out.BusinessModel, in.BusinessModel)
	setString(&out.CompetitiveAdvantage, in.CompetitiveAdvantage)
	setString(&out.MarketingStrategy, in.MarketingStrategy)
	setString(&out.OperationsPlan, in.OperationsPlan)
	setString(&out.ExecutiveSummary, in.ExecutiveSummary)
	setString(&out.BusinessDescription, in.BusinessDescription)
	setString(&out.MarketAnalysis, in.MarketAnalysis)
	setString(&out.CompetitiveAnalysis, in.CompetitiveAnalysis)
	setString(&out.OperationalPlan, in.OperationalPlan)
	setString(&out.ManagementTeam, in.ManagementTeam)
	setString(&out.RiskAnalysis, in.RiskAnalysis)
	setString(&out.Appendices, in.Appendices)

	setList(&out.RevenueStreams, in.RevenueStreams)
	setList(&out.CostStructure, in.CostStructure)
	setList(&out.KeyMetrics, in.KeyMetrics)

	if ia := in.ImpactAssessment; ia != nil {
		if out.ImpactAssessment == nil {
			out.ImpactAssessment = &types.ImpactAssessment{}
		}
		t := out.ImpactAssessment
		setString(&t.ProblemSolved, ia.ProblemSolved)
		setString(&t.Beneficiaries, ia.Beneficiaries)
		setString(&t.ResourcesUsed, ia.ResourcesUsed)
		setString(&t.CommunityInvolvement, ia.CommunityInvolvement)
		setString(&t.LongTermImpact, ia.LongTermImpact)
	}
	if mc := in.ModelCanvas; mc != nil {
		if out.ModelCanvas == nil {
			out.ModelCanvas = &types.ModelCanvas{}
		}
		t := out.ModelCanvas
		setString(&t.KeyPartners, mc.KeyPartners)
		setString(&t.KeyActivities, mc.KeyActivities)
		setString(&t.KeyResources, mc.KeyResources)
		setString(&t.ValuePropositions, mc.ValuePropositions)
		setString(&t.CustomerRelationships, mc.CustomerRelationships)
		setString(&t.Channels, mc.Channels)
		setString(&t.CustomerSegments, mc.CustomerSegments)
		setString(&t.CostStructure, mc.CostStructure)
		setString(&t.RevenueStreams, mc.RevenueStreams)
	}
	if fi := in.Financials; fi != nil {
		if out.Financials == nil {
			out.Financials = &types.Financials{}
		}
		t := out.Financials
		setFloatPtr(&t.StartupCosts, fi.StartupCosts)
		setFloatPtr(&t.MonthlyRevenue, fi.MonthlyRevenue)
		setFloatPtr(&t.MonthlyExpenses, fi.MonthlyExpenses)
		setFloatPtr(&t.BreakEvenMonth, fi.BreakEvenMonth)
	}
	return out
}

func setString(dst *string, v *string) { pointers.Assign(dst, v) }

func setFloat(dst *float64, v *float64) { pointers.Assign(dst, v) }

func setFloatPtr(dst **float64, v *float64) {
	if v != nil {
		*dst = pointers.Clone(v)
	}
}

func setList(dst *datatypes.JSONSlice[string], v *[]string) {
	if v != nil {
		*dst = append(datatypes.JSONSlice[string]{}, (*v)...)
	}
}
