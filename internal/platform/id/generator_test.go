package id

import "testing"

func TestUUIDGenerator(t *testing.T) {
	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, _ := gen.NewID()
	if first == second {
		t.Fatalf("expected distinct ids")
	}
	if !Valid(first) {
		t.Fatalf("generated id should be valid: %s", first)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "7c9e6679-7425-40de-944b-e07fc1f90ae7", want: true},
		{in: "7c9e6679742540de944be07fc1f90ae7", want: false},
		{in: "not-an-id", want: false},
		{in: "", want: false},
	}
	for _, tt := range tests {
		if got := Valid(tt.in); got != tt.want {
			t.Fatalf("Valid(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}
