package businessplan

import (
	"math"
	"strings"

	types "github.com/yungbote/cemse-backend/internal/domain/businessplan"
	apperr "github.com/yungbote/cemse-backend/internal/pkg/errors"
)

const (
	reasonRequired    = "required"
	reasonEmpty       = "must not be empty"
	reasonNonNegative = "must be a non-negative number"
)

var reasonStage = "must be one of " + joinStages()

// ValidateForCreate checks a complete record and reports the first offending field.
func ValidateForCreate(in types.PlanInput) error {
	for _, f := range []struct {
		name string
		v    *string
	}{
		{"ownerId", in.OwnerID},
		{"title", in.Title},
		{"description", in.Description},
		{"industry", in.Industry},
	} {
		if f.v == nil {
			return apperr.NewValidation(f.name, reasonRequired)
		}
		if strings.TrimSpace(*f.v) == "" {
			return apperr.NewValidation(f.name, reasonEmpty)
		}
	}
	if in.Stage == nil {
		return apperr.NewValidation("stage", reasonRequired)
	}
	if !in.Stage.Valid() {
		return apperr.NewValidation("stage", reasonStage)
	}
	if in.FundingGoal == nil {
		return apperr.NewValidation("fundingGoal", reasonRequired)
	}
	return validateNumbers(in)
}

// ValidateForUpdate applies the create constraints to supplied fields only.
func ValidateForUpdate(in types.PlanInput) error {
	for _, f := range []struct {
		name string
		v    *string
	}{
		{"ownerId", in.OwnerID},
		{"title", in.Title},
		{"description", in.Description},
		{"industry", in.Industry},
	} {
		if f.v != nil && strings.TrimSpace(*f.v) == "" {
			return apperr.NewValidation(f.name, reasonEmpty)
		}
	}
	if in.Stage != nil && !in.Stage.Valid() {
		return apperr.NewValidation("stage", reasonStage)
	}
	return validateNumbers(in)
}

// ValidateSanitized rejects a cleaned record whose required text became empty,
// e.g. a title that held nothing but a script block.
func ValidateSanitized(p types.BusinessPlan) error {
	for _, f := range []struct {
		name string
		v    string
	}{
		{"ownerId", p.OwnerID},
		{"title", p.Title},
		{"description", p.Description},
		{"industry", p.Industry},
	} {
		if strings.TrimSpace(f.v) == "" {
			return apperr.NewValidation(f.name, reasonEmpty)
		}
	}
	return nil
}

func validateNumbers(in types.PlanInput) error {
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"fundingGoal", in.FundingGoal},
		{"currentFunding", in.CurrentFunding},
	} {
		if f.v != nil && !nonNegative(*f.v) {
			return apperr.NewValidation(f.name, reasonNonNegative)
		}
	}
	if in.TeamSize != nil && *in.TeamSize < 0 {
		return apperr.NewValidation("teamSize", reasonNonNegative)
	}
	if in.MarketSize != nil && !nonNegative(*in.MarketSize) {
		return apperr.NewValidation("marketSize", reasonNonNegative)
	}
	return nil
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func joinStages() string {
	parts := make([]string, 0, len(types.Stages))
	for _, s := range types.Stages {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}
