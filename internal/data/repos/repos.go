package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/cemse-backend/internal/data/repos/businessplan"
	"github.com/yungbote/cemse-backend/internal/platform/logger"
)

type BusinessPlanRepo = businessplan.PlanRepo

func NewBusinessPlanRepo(db *gorm.DB, baseLog *logger.Logger) BusinessPlanRepo {
	return businessplan.NewPlanRepo(db, baseLog)
}
