package pointers

import "testing"

func TestCloneDoesNotAlias(t *testing.T) {
	if Clone[int](nil) != nil {
		t.Fatalf("Clone(nil) should be nil")
	}
	src := Float64(1.5)
	c := Clone(src)
	*src = 9
	if *c != 1.5 {
		t.Fatalf("clone aliased source: %v", *c)
	}
}

func TestAssign(t *testing.T) {
	dst := "keep"
	if Assign(&dst, nil) || dst != "keep" {
		t.Fatalf("nil src must leave dst untouched, got %q", dst)
	}
	if !Assign(&dst, String("new")) || dst != "new" {
		t.Fatalf("assign: got %q", dst)
	}
}
