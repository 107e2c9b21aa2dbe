package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/yungbote/cemse-backend/internal/domain"
)

func SeedBusinessPlan(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID, title string) *types.BusinessPlan {
	tb.Helper()
	now := time.Now().UTC()
	p := &types.BusinessPlan{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Stage:          types.StageIdea,
		Title:          title,
		Description:    "seeded plan",
		Industry:       "Retail",
		FundingGoal:    1000,
		RevenueStreams: datatypes.JSONSlice[string]{},
		CostStructure:  datatypes.JSONSlice[string]{},
		KeyMetrics:     datatypes.JSONSlice[string]{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed business plan: %v", err)
	}
	return p
}

func PtrFloat(v float64) *float64 { return &v }
