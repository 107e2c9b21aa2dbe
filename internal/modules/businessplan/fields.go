package businessplan

import (
	"gorm.io/datatypes"

	types "github.com/yungbote/cemse-backend/internal/domain/businessplan"
)

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldList
	FieldEnum
)

// Field is one top-level plan field known to the sanitizer and the scorer.
type Field struct {
	Name   string
	Kind   FieldKind
	Scored bool

	text func(p *types.BusinessPlan) *string
	list func(p *types.BusinessPlan) *datatypes.JSONSlice[string]
	enum func(p *types.BusinessPlan) *types.Stage
}

type NestedText[T any] struct {
	Name string
	get  func(v *T) *string
}

type NestedNumber[T any] struct {
	Name string
	get  func(v *T) *float64
}

func text(name string, scored bool, get func(p *types.BusinessPlan) *string) Field {
	return Field{Name: name, Kind: FieldText, Scored: scored, text: get}
}

func list(name string, get func(p *types.BusinessPlan) *datatypes.JSONSlice[string]) Field {
	return Field{Name: name, Kind: FieldList, Scored: true, list: get}
}

// PlanFields is the ordered registry of top-level plan fields. Scored marks the
// base checklist of the completion score; unscored text fields are still sanitized.
var PlanFields = []Field{
	text("title", true, func(p *types.BusinessPlan) *string { return &p.Title }),
	text("description", true, func(p *types.BusinessPlan) *string { return &p.Description }),
	text("industry", true, func(p *types.BusinessPlan) *string { return &p.Industry }),
	{Name: "stage", Kind: FieldEnum, Scored: true, enum: func(p *types.BusinessPlan) *types.Stage { return &p.Stage }},
	text("targetMarket", true, func(p *types.BusinessPlan) *string { return &p.TargetMarket }),
	text("problemStatement", true, func(p *types.BusinessPlan) *string { return &p.ProblemStatement }),
	text("solution", true, func(p *types.BusinessPlan) *string { return &p.Solution }),
	text("valueProposition", true, func(p *types.BusinessPlan) *string { return &p.ValueProposition }),
	text("businessModel", true, func(p *types.BusinessPlan) *string { return &p.BusinessModel }),
	text("competitiveAdvantage", true, func(p *types.BusinessPlan) *string { return &p.CompetitiveAdvantage }),
	text("marketingStrategy", true, func(p *types.BusinessPlan) *string { return &p.MarketingStrategy }),
	text("operationsPlan", true, func(p *types.BusinessPlan) *string { return &p.OperationsPlan }),
	text("executiveSummary", true, func(p *types.BusinessPlan) *string { return &p.ExecutiveSummary }),
	text("marketAnalysis", true, func(p *types.BusinessPlan) *string { return &p.MarketAnalysis }),
	text("competitiveAnalysis", true, func(p *types.BusinessPlan) *string { return &p.CompetitiveAnalysis }),
	text("managementTeam", true, func(p *types.BusinessPlan) *string { return &p.ManagementTeam }),
	text("riskAnalysis", true, func(p *types.BusinessPlan) *string { return &p.RiskAnalysis }),
	list("revenueStreams", func(p *types.BusinessPlan) *datatypes.JSONSlice[string] { return &p.RevenueStreams }),
	list("costStructure", func(p *types.BusinessPlan) *datatypes.JSONSlice[string] { return &p.CostStructure }),
	list("keyMetrics", func(p *types.BusinessPlan) *datatypes.JSONSlice[string] { return &p.KeyMetrics }),
	text("businessDescription", false, func(p *types.BusinessPlan) *string { return &p.BusinessDescription }),
	text("operationalPlan", false, func(p *types.BusinessPlan) *string { return &p.OperationalPlan }),
	text("appendices", false, func(p *types.BusinessPlan) *string { return &p.Appendices }),
}

var ImpactFields = []NestedText[types.ImpactAssessment]{
	{"problemSolved", func(v *types.ImpactAssessment) *string { return &v.ProblemSolved }},
	{"beneficiaries", func(v *types.ImpactAssessment) *string { return &v.Beneficiaries }},
	{"resourcesUsed", func(v *types.ImpactAssessment) *string { return &v.ResourcesUsed }},
	{"communityInvolvement", func(v *types.ImpactAssessment) *string { return &v.CommunityInvolvement }},
	{"longTermImpact", func(v *types.ImpactAssessment) *string { return &v.LongTermImpact }},
}

var CanvasFields = []NestedText[types.ModelCanvas]{
	{"keyPartners", func(v *types.ModelCanvas) *string { return &v.KeyPartners }},
	{"keyActivities", func(v *types.ModelCanvas) *string { return &v.KeyActivities }},
	{"keyResources", func(v *types.ModelCanvas) *string { return &v.KeyResources }},
	{"valuePropositions", func(v *types.ModelCanvas) *string { return &v.ValuePropositions }},
	{"customerRelationships", func(v *types.ModelCanvas) *string { return &v.CustomerRelationships }},
	{"channels", func(v *types.ModelCanvas) *string { return &v.Channels }},
	{"customerSegments", func(v *types.ModelCanvas) *string { return &v.CustomerSegments }},
	{"costStructure", func(v *types.ModelCanvas) *string { return &v.CostStructure }},
	{"revenueStreams", func(v *types.ModelCanvas) *string { return &v.RevenueStreams }},
}

var FinancialFields = []NestedNumber[types.Financials]{
	{"startupCosts", func(v *types.Financials) *float64 { return v.StartupCosts }},
	{"monthlyRevenue", func(v *types.Financials) *float64 { return v.MonthlyRevenue }},
	{"monthlyExpenses", func(v *types.Financials) *float64 { return v.MonthlyExpenses }},
	{"breakEvenMonth", func(v *types.Financials) *float64 { return v.BreakEvenMonth }},
}

// ScoredFieldCount is the completion-score denominator.
func ScoredFieldCount() int {
	n := 0
	for _, f := range PlanFields {
		if f.Scored {
			n++
		}
	}
	return n + len(ImpactFields) + len(CanvasFields) + len(FinancialFields)
}
