package domain

import (
	"github.com/yungbote/cemse-backend/internal/domain/businessplan"
)

type (
	BusinessPlan          = businessplan.BusinessPlan
	ImpactAssessment      = businessplan.ImpactAssessment
	ModelCanvas           = businessplan.ModelCanvas
	Financials            = businessplan.Financials
	Stage                 = businessplan.Stage
	PlanInput             = businessplan.PlanInput
	ImpactAssessmentInput = businessplan.ImpactAssessmentInput
	ModelCanvasInput      = businessplan.ModelCanvasInput
	FinancialsInput       = businessplan.FinancialsInput
	PlanEvent             = businessplan.PlanEvent
	EventType             = businessplan.EventType
)

const (
	StageIdea    = businessplan.StageIdea
	StageStartup = businessplan.StageStartup
	StageGrowth  = businessplan.StageGrowth
	StageMature  = businessplan.StageMature

	EventCreated = businessplan.EventCreated
	EventUpdated = businessplan.EventUpdated
	EventDeleted = businessplan.EventDeleted
)

// Models lists every table this service migrates.
func Models() []interface{} {
	return []interface{}{
		&businessplan.BusinessPlan{},
	}
}
