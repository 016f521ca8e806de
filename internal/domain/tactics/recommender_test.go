package tactics

import (
	"reflect"
	"testing"
)

func formations(items []Recommendation) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Formation)
	}
	return out
}

func TestRecommend_Fallback(t *testing.T) {
	got := Recommend(NewStrengthSet(), NewWeaknessSet())
	if len(got) != 1 {
		t.Fatalf("expected exactly one fallback recommendation, got %+v", got)
	}
	if got[0] != fallbackRecommendation {
		t.Fatalf("unexpected fallback: %+v", got[0])
	}

	if got := Recommend(nil, nil); len(got) != 1 || got[0].Formation != Formation433 {
		t.Fatalf("expected fallback for nil sets, got %+v", got)
	}
}

func TestRecommend_WideOverload(t *testing.T) {
	got := Recommend(NewStrengthSet(StrongWings), NewWeaknessSet(WeakFullbacks))
	if want := []string{"4-3-3", "3-4-3"}; !reflect.DeepEqual(formations(got), want) {
		t.Fatalf("unexpected formations: got=%v want=%v", formations(got), want)
	}
	for _, item := range got {
		if item.Rationale == "" {
			t.Fatalf("expected rationale for %s", item.Formation)
		}
	}
}

func TestRecommend_RulesOneAndTwoCombine(t *testing.T) {
	got := Recommend(
		NewStrengthSet(StrongWings, InteriorPlay),
		NewWeaknessSet(WeakFullbacks, WeakMidfield),
	)
	want := []string{"4-3-3", "3-4-3", "4-2-3-1", "4-4-2 (diamond)"}
	if !reflect.DeepEqual(formations(got), want) {
		t.Fatalf("unexpected formations: got=%v want=%v", formations(got), want)
	}
}

func TestRecommend_FirstRationaleWinsOnDuplicateFormation(t *testing.T) {
	rules := DefaultRules()
	got := Recommend(
		NewStrengthSet(PreciseCrossing),
		NewWeaknessSet(WeakAerial, SpaceBehindDefense),
	)

	want := []string{"4-3-3", "3-4-3", "4-2-2-2"}
	if !reflect.DeepEqual(formations(got), want) {
		t.Fatalf("unexpected formations: got=%v want=%v", formations(got), want)
	}

	count := 0
	for _, item := range got {
		if item.Formation == Formation433 {
			count++
			if item.Rationale != rules[0].Proposals[0].Rationale {
				t.Fatalf("expected rationale from the first rule, got %q", item.Rationale)
			}
		}
	}
	if count != 1 {
		t.Fatalf("expected 4-3-3 exactly once, got %d", count)
	}
}

func TestRecommend_AllRules(t *testing.T) {
	got := Recommend(
		NewStrengthSet(StrongWings, CreativePlaymaker, HighPress),
		NewWeaknessSet(WeakFullbacks, BetweenLines, SpaceBehindDefense, TransitionVulnerable),
	)
	want := []string{"4-3-3", "3-4-3", "4-2-3-1", "4-4-2 (diamond)", "4-2-2-2", "4-4-2", "5-3-2"}
	if !reflect.DeepEqual(formations(got), want) {
		t.Fatalf("unexpected formations: got=%v want=%v", formations(got), want)
	}
}

func TestRecommend_StrengthWithoutMatchingWeaknessFallsBack(t *testing.T) {
	got := Recommend(NewStrengthSet(StrongWings, HighPress), NewWeaknessSet(WeakMidfield))
	if len(got) != 1 || got[0] != fallbackRecommendation {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestDefaultRules_Isolated(t *testing.T) {
	tests := []struct {
		rule       string
		strengths  StrengthSet
		weaknesses WeaknessSet
		want       bool
	}{
		{rule: "wide-overload", strengths: NewStrengthSet(PreciseCrossing), weaknesses: NewWeaknessSet(WeakAerial), want: true},
		{rule: "wide-overload", strengths: NewStrengthSet(StrongWings), weaknesses: NewWeaknessSet(WeakAerial), want: false},
		{rule: "central-overload", strengths: NewStrengthSet(CreativePlaymaker), weaknesses: NewWeaknessSet(BetweenLines), want: true},
		{rule: "central-overload", strengths: NewStrengthSet(InteriorPlay), weaknesses: NewWeaknessSet(BetweenLines), want: false},
		{rule: "attack-depth", weaknesses: NewWeaknessSet(SpaceBehindDefense), want: true},
		{rule: "compact-counter", weaknesses: NewWeaknessSet(TransitionVulnerable), want: true},
		{rule: "compact-counter", strengths: NewStrengthSet(HighPress), want: false},
	}

	byName := make(map[string]Rule)
	for _, rule := range DefaultRules() {
		byName[rule.Name] = rule
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			rule, ok := byName[tt.rule]
			if !ok {
				t.Fatalf("rule %q not found", tt.rule)
			}
			if got := rule.Applies(tt.strengths, tt.weaknesses); got != tt.want {
				t.Fatalf("rule %s applies=%v want=%v", tt.rule, got, tt.want)
			}
			if len(rule.Proposals) != 2 {
				t.Fatalf("rule %s should propose two formations", tt.rule)
			}
		})
	}
}

func TestNewRecommender_CustomRules(t *testing.T) {
	r := NewRecommender([]Rule{
		{
			Name:      "press",
			Applies:   func(s StrengthSet, _ WeaknessSet) bool { return s.Has(HighPress) },
			Proposals: []Recommendation{{Formation: Formation4231, Rationale: "Press from the front."}},
		},
	})

	got := r.Recommend(NewStrengthSet(HighPress), nil)
	if len(got) != 1 || got[0].Formation != Formation4231 {
		t.Fatalf("unexpected custom rule result: %+v", got)
	}
}
