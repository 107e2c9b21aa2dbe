package businessplan

// PlanInput is a caller-supplied plan, full on create and partial on update.
// A nil pointer means the field was not supplied.
type PlanInput struct {
	OwnerID *string `json:"ownerId,omitempty"`
	Stage   *Stage  `json:"stage,omitempty"`

	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Industry    *string `json:"industry,omitempty"`

	FundingGoal    *float64 `json:"fundingGoal,omitempty"`
	CurrentFunding *float64 `json:"currentFunding,omitempty"`
	TeamSize       *int     `json:"teamSize,omitempty"`
	MarketSize     *float64 `json:"marketSize,omitempty"`

	TargetMarket         *string `json:"targetMarket,omitempty"`
	ProblemStatement     *string `json:"problemStatement,omitempty"`
	Solution             *string `json:"solution,omitempty"`
	ValueProposition     *string `json:"valueProposition,omitempty"`
	BusinessModel        *string `json:"businessModel,omitempty"`
	CompetitiveAdvantage *string `json:"competitiveAdvantage,omitempty"`
	MarketingStrategy    *string `json:"marketingStrategy,omitempty"`
	OperationsPlan       *string `json:"operationsPlan,omitempty"`
	ExecutiveSummary     *string `json:"executiveSummary,omitempty"`
	BusinessDescription  *string `json:"businessDescription,omitempty"`
	MarketAnalysis       *string `json:"marketAnalysis,omitempty"`
	CompetitiveAnalysis  *string `json:"competitiveAnalysis,omitempty"`
	OperationalPlan      *string `json:"operationalPlan,omitempty"`
	ManagementTeam       *string `json:"managementTeam,omitempty"`
	RiskAnalysis         *string `json:"riskAnalysis,omitempty"`
	Appendices           *string `json:"appendices,omitempty"`

	RevenueStreams *[]string `json:"revenueStreams,omitempty"`
	CostStructure  *[]string `json:"costStructure,omitempty"`
	KeyMetrics     *[]string `json:"keyMetrics,omitempty"`

	ImpactAssessment *ImpactAssessmentInput `json:"impactAssessment,omitempty"`
	ModelCanvas      *ModelCanvasInput      `json:"modelCanvas,omitempty"`
	Financials       *FinancialsInput       `json:"financials,omitempty"`
}

type ImpactAssessmentInput struct {
	ProblemSolved        *string `json:"problemSolved,omitempty"`
	Beneficiaries        *string `json:"beneficiaries,omitempty"`
	ResourcesUsed        *string `json:"resourcesUsed,omitempty"`
	CommunityInvolvement *string `json:"communityInvolvement,omitempty"`
	LongTermImpact       *string `json:"longTermImpact,omitempty"`
}

type ModelCanvasInput struct {
	KeyPartners           *string `json:"keyPartners,omitempty"`
	KeyActivities         *string `json:"keyActivities,omitempty"`
	KeyResources          *string `json:"keyResources,omitempty"`
	ValuePropositions     *string `json:"valuePropositions,omitempty"`
	CustomerRelationships *string `json:"customerRelationships,omitempty"`
	Channels              *string `json:"channels,omitempty"`
	CustomerSegments      *string `json:"customerSegments,omitempty"`
	CostStructure         *string `json:"costStructure,omitempty"`
	RevenueStreams        *string `json:"revenueStreams,omitempty"`
}

type FinancialsInput struct {
	StartupCosts    *float64 `json:"startupCosts,omitempty"`
	MonthlyRevenue  *float64 `json:"monthlyRevenue,omitempty"`
	MonthlyExpenses *float64 `json:"monthlyExpenses,omitempty"`
	BreakEvenMonth  *float64 `json:"breakEvenMonth,omitempty"`
}
