package pointers

func To[T any](v T) *T { return &v }

// Clone copies the pointee, so the result never aliases p.
func Clone[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Assign writes *src into dst when src is set and reports whether it did.
func Assign[T any](dst *T, src *T) bool {
	if src == nil {
		return false
	}
	*dst = *src
	return true
}

func Float64(v float64) *float64 { return To(v) }
func Int(v int) *int             { return To(v) }
func String(v string) *string    { return To(v) }
