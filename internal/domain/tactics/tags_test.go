package tactics

import "testing"

func TestParseStrength(t *testing.T) {
	tests := []struct {
		in      string
		want    Strength
		wantErr bool
	}{
		{in: "StrongWings", want: StrongWings},
		{in: "strong_wings", want: StrongWings},
		{in: "Bandas fuertes", want: StrongWings},
		{in: " mediapunta creativo ", want: CreativePlaymaker},
		{in: "Tiki-taka", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrength(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("ParseStrength(%q)=(%q,%v) want=%q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestParseWeakness(t *testing.T) {
	tests := []struct {
		in   string
		want Weakness
	}{
		{in: "WeakFullbacks", want: WeakFullbacks},
		{in: "Laterales débiles", want: WeakFullbacks},
		{in: "space-behind-defense", want: SpaceBehindDefense},
		{in: "Sufre transiciones", want: TransitionVulnerable},
		{in: "Entre líneas", want: BetweenLines},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeakness(tt.in)
			if err != nil || got != tt.want {
				t.Fatalf("ParseWeakness(%q)=(%q,%v) want=%q", tt.in, got, err, tt.want)
			}
		})
	}

	if _, err := ParseWeakness("StrongWings"); err == nil {
		t.Fatalf("strength tag must not parse as weakness")
	}
}

func TestVocabulariesAreCopies(t *testing.T) {
	items := Strengths()
	items[0].Tag = "changed"
	if Strengths()[0].Tag != string(StrongWings) {
		t.Fatalf("vocabulary must not be mutable through the returned slice")
	}
	if len(Weaknesses()) != 6 {
		t.Fatalf("expected 6 weakness tags, got %d", len(Weaknesses()))
	}
}
