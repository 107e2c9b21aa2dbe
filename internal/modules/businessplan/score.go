package businessplan

import (
	"math"
	"strings"

	types "github.com/yungbote/cemse-backend/internal/domain/businessplan"
)

// CompletionReport explains a completion score.
type CompletionReport struct {
	Score     int      `json:"score"`
	Completed int      `json:"completed"`
	Total     int      `json:"total"`
	Missing   []string `json:"missing"`
}

// Score returns round(100 * completed / total) over the fixed field checklist.
func Score(p types.BusinessPlan) int {
	return Report(p).Score
}

// Report computes the score and lists the checklist entries still missing,
// as dotted paths for nested fields.
func Report(p types.BusinessPlan) CompletionReport {
	r := CompletionReport{Total: ScoredFieldCount(), Missing: []string{}}
	mark := func(path string, ok bool) {
		if ok {
			r.Completed++
			return
		}
		r.Missing = append(r.Missing, path)
	}

	for _, f := range PlanFields {
		if !f.Scored {
			continue
		}
		switch f.Kind {
		case FieldText:
			mark(f.Name, filled(*f.text(&p)))
		case FieldList:
			mark(f.Name, len(*f.list(&p)) > 0)
		case FieldEnum:
			mark(f.Name, filled(string(*f.enum(&p))))
		}
	}
	for _, f := range ImpactFields {
		mark("impactAssessment."+f.Name, p.ImpactAssessment != nil && filled(*f.get(p.ImpactAssessment)))
	}
	for _, f := range CanvasFields {
		mark("modelCanvas."+f.Name, p.ModelCanvas != nil && filled(*f.get(p.ModelCanvas)))
	}
	for _, f := range FinancialFields {
		ok := false
		if p.Financials != nil {
			if v := f.get(p.Financials); v != nil && *v > 0 {
				ok = true
			}
		}
		mark("financials."+f.Name, ok)
	}

	if r.Total > 0 {
		r.Score = int(math.Round(100 * float64(r.Completed) / float64(r.Total)))
	}
	if r.Score < 0 {
		r.Score = 0
	}
	if r.Score > 100 {
		r.Score = 100
	}
	return r
}

func filled(v string) bool { return strings.TrimSpace(v) != "" }
