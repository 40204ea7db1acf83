package apperr

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ModelUnsat, "division %q has no feasible schedule", "American")
	if err.Kind != ModelUnsat {
		t.Errorf("Kind = %v, want %v", err.Kind, ModelUnsat)
	}
	want := `ModelUnsat: division "American" has no feasible schedule`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(InputConsistency, cause, "reading %s", "fixtures.csv")

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	want := `InputConsistency: reading fixtures.csv: boom`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestKindFatal(t *testing.T) {
	cases := map[Kind]bool{
		InputConsistency:        true,
		ModelUnsat:              true,
		ExtractionInvariant:     true,
		KPITighteningTimeout:    false,
		SharedSlotResidualClash: false,
	}
	for kind, want := range cases {
		if got := kind.Fatal(); got != want {
			t.Errorf("%v.Fatal() = %v, want %v", kind, got, want)
		}
	}
}

func TestKindString(t *testing.T) {
	if got := Kind(999).String(); got != "Unknown" {
		t.Errorf("String() of unknown kind = %q, want %q", got, "Unknown")
	}
}
