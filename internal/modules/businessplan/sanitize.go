package businessplan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"

	types "github.com/yungbote/cemse-backend/internal/domain/businessplan"
	"github.com/yungbote/cemse-backend/internal/pkg/pointers"
)

type Policy string

const (
	// PolicyScriptStrip trims and deletes <script> blocks. Other markup is kept.
	PolicyScriptStrip Policy = "script"
	// PolicyStrict additionally removes every tag and escapes HTML entities.
	PolicyStrict Policy = "strict"
)

func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyScriptStrip:
		return PolicyScriptStrip, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown sanitize policy %q", raw)
	}
}

var scriptBlock = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)

type Sanitizer struct {
	policy Policy
	strict *bluemonday.Policy
}

func NewSanitizer(policy Policy) *Sanitizer {
	s := &Sanitizer{policy: policy}
	if policy == PolicyStrict {
		s.strict = bluemonday.StrictPolicy()
	}
	return s
}

var defaultSanitizer = NewSanitizer(PolicyScriptStrip)

// Sanitize applies the default script-strip policy.
func Sanitize(p types.BusinessPlan) types.BusinessPlan {
	return defaultSanitizer.Sanitize(p)
}

func (s *Sanitizer) Policy() Policy {
	if s == nil {
		return PolicyScriptStrip
	}
	return s.policy
}

// Sanitize returns a cleaned copy of p; p itself is not modified. Only string
// and string-list fields change, and absent sub-records stay absent.
func (s *Sanitizer) Sanitize(p types.BusinessPlan) types.BusinessPlan {
	out := clonePlan(p)
	for _, f := range PlanFields {
		switch f.Kind {
		case FieldText:
			v := f.text(&out)
			*v = s.clean(*v)
		case FieldList:
			v := f.list(&out)
			*v = s.cleanList(*v)
		}
	}
	if out.ImpactAssessment != nil {
		for _, f := range ImpactFields {
			v := f.get(out.ImpactAssessment)
			*v = s.clean(*v)
		}
	}
	if out.ModelCanvas != nil {
		for _, f := range CanvasFields {
			v := f.get(out.ModelCanvas)
			*v = s.clean(*v)
		}
	}
	return out
}

// SanitizeString applies the policy to one value.
func (s *Sanitizer) SanitizeString(v string) string { return s.clean(v) }

func (s *Sanitizer) clean(v string) string {
	v = strings.TrimSpace(v)
	for scriptBlock.MatchString(v) {
		v = scriptBlock.ReplaceAllString(v, "")
	}
	if s != nil && s.strict != nil {
		v = s.strict.Sanitize(v)
	}
	return strings.TrimSpace(v)
}

func (s *Sanitizer) cleanList(in datatypes.JSONSlice[string]) datatypes.JSONSlice[string] {
	out := make(datatypes.JSONSlice[string], 0, len(in))
	for _, item := range in {
		if c := s.clean(item); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func clonePlan(p types.BusinessPlan) types.BusinessPlan {
	out := p
	out.RevenueStreams = cloneList(p.RevenueStreams)
	out.CostStructure = cloneList(p.CostStructure)
	out.KeyMetrics = cloneList(p.KeyMetrics)
	if p.ImpactAssessment != nil {
		v := *p.ImpactAssessment
		out.ImpactAssessment = &v
	}
	if p.ModelCanvas != nil {
		v := *p.ModelCanvas
		out.ModelCanvas = &v
	}
	if p.Financials != nil {
		out.Financials = &types.Financials{
			StartupCosts:    pointers.Clone(p.Financials.StartupCosts),
			MonthlyRevenue:  pointers.Clone(p.Financials.MonthlyRevenue),
			MonthlyExpenses: pointers.Clone(p.Financials.MonthlyExpenses),
			BreakEvenMonth:  pointers.Clone(p.Financials.BreakEvenMonth),
		}
	}
	return out
}

func cloneList(in datatypes.JSONSlice[string]) datatypes.JSONSlice[string] {
	if in == nil {
		return nil
	}
	return append(datatypes.JSONSlice[string](nil), in...)
}
