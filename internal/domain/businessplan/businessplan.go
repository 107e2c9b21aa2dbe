package businessplan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Stage string

const (
	StageIdea    Stage = "idea"
	StageStartup Stage = "startup"
	StageGrowth  Stage = "growth"
	StageMature  Stage = "mature"
)

// Stages lists the accepted stage values in lifecycle order.
var Stages = []Stage{StageIdea, StageStartup, StageGrowth, StageMature}

func (s Stage) Valid() bool {
	for _, v := range Stages {
		if s == v {
			return true
		}
	}
	return false
}

// BusinessPlan is the stored, sanitized plan record. CompletionScore is derived
// on every write and never read from callers.
type BusinessPlan struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID string    `gorm:"column:owner_id;not null;uniqueIndex:idx_business_plan_owner_title,priority:1" json:"ownerId"`

	Stage       Stage  `gorm:"column:stage;not null;index" json:"stage"`
	Title       string `gorm:"column:title;not null;uniqueIndex:idx_business_plan_owner_title,priority:2" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Industry    string `gorm:"column:industry" json:"industry"`

	FundingGoal    float64 `gorm:"column:funding_goal;not null;default:0" json:"fundingGoal"`
	CurrentFunding float64 `gorm:"column:current_funding;not null;default:0" json:"currentFunding"`
	TeamSize       int     `gorm:"column:team_size;not null;default:0" json:"teamSize"`
	MarketSize     float64 `gorm:"column:market_size;not null;default:0" json:"marketSize"`

	TargetMarket         string `gorm:"column:target_market;type:text" json:"targetMarket"`
	ProblemStatement     string `gorm:"column:problem_statement;type:text" json:"problemStatement"`
	Solution             string `gorm:"column:solution;type:text" json:"solution"`
	ValueProposition     string `gorm:"column:value_proposition;type:text" json:"valueProposition"`
	BusinessModel        string `gorm:"column:business_model;type:text" json:"businessModel"`
	CompetitiveAdvantage string `gorm:"column:competitive_advantage;type:text" json:"competitiveAdvantage"`
	MarketingStrategy    string `gorm:"column:marketing_strategy;type:text" json:"marketingStrategy"`
	OperationsPlan       string `gorm:"column:operations_plan;type:text" json:"operationsPlan"`
	ExecutiveSummary     string `gorm:"column:executive_summary;type:text" json:"executiveSummary"`
	BusinessDescription  string `gorm:"column:business_description;type:text" json:"businessDescription"`
	MarketAnalysis       string `gorm:"column:market_analysis;type:text" json:"marketAnalysis"`
	CompetitiveAnalysis  string `gorm:"column:competitive_analysis;type:text" json:"competitiveAnalysis"`
	OperationalPlan      string `gorm:"column:operational_plan;type:text" json:"operationalPlan"`
	ManagementTeam       string `gorm:"column:management_team;type:text" json:"managementTeam"`
	RiskAnalysis         string `gorm:"column:risk_analysis;type:text" json:"riskAnalysis"`
	Appendices           string `gorm:"column:appendices;type:text" json:"appendices"`

	RevenueStreams datatypes.JSONSlice[string] `gorm:"column:revenue_streams" json:"revenueStreams"`
	CostStructure  datatypes.JSONSlice[string] `gorm:"column:cost_structure" json:"costStructure"`
	KeyMetrics     datatypes.JSONSlice[string] `gorm:"column:key_metrics" json:"keyMetrics"`

	// Nested sub-records stay nil when the owner never filled them in.
	ImpactAssessment *ImpactAssessment `gorm:"column:impact_assessment;serializer:json" json:"impactAssessment,omitempty"`
	ModelCanvas      *ModelCanvas      `gorm:"column:model_canvas;serializer:json" json:"modelCanvas,omitempty"`
	Financials       *Financials       `gorm:"column:financials;serializer:json" json:"financials,omitempty"`

	CompletionScore int       `gorm:"column:completion_score;not null;default:0;index" json:"completionScore"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"not null;index" json:"updatedAt"`
}

func (BusinessPlan) TableName() string { return "business_plan" }

// ImpactAssessment is the triple-impact section of a plan.
type ImpactAssessment struct {
	ProblemSolved        string `json:"problemSolved"`
	Beneficiaries        string `json:"beneficiaries"`
	ResourcesUsed        string `json:"resourcesUsed"`
	CommunityInvolvement string `json:"communityInvolvement"`
	LongTermImpact       string `json:"longTermImpact"`
}

// ModelCanvas is the nine-block business model canvas.
type ModelCanvas struct {
	KeyPartners           string `json:"keyPartners"`
	KeyActivities         string `json:"keyActivities"`
	KeyResources          string `json:"keyResources"`
	ValuePropositions     string `json:"valuePropositions"`
	CustomerRelationships string `json:"customerRelationships"`
	Channels              string `json:"channels"`
	CustomerSegments      string `json:"customerSegments"`
	CostStructure         string `json:"costStructure"`
	RevenueStreams        string `json:"revenueStreams"`
}

// Financials holds the optional projections. A nil field was never supplied.
type Financials struct {
	StartupCosts    *float64 `json:"startupCosts,omitempty"`
	MonthlyRevenue  *float64 `json:"monthlyRevenue,omitempty"`
	MonthlyExpenses *float64 `json:"monthlyExpenses,omitempty"`
	BreakEvenMonth  *float64 `json:"breakEvenMonth,omitempty"`
}
