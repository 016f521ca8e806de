package tactics

// Formation names proposed by the default rules.
const (
	Formation433        = "4-3-3"
	Formation343        = "3-4-3"
	Formation4231       = "4-2-3-1"
	Formation442Diamond = "4-4-2 (diamond)"
	Formation4222       = "4-2-2-2"
	Formation442        = "4-4-2"
	Formation532        = "5-3-2"
)

// Recommendation is one suggested formation with the reason it was proposed.
type Recommendation struct {
	Formation string `json:"formation"`
	Rationale string `json:"rationale"`
}

// Rule proposes formations when Applies holds for the tag sets.
type Rule struct {
	Name      string
	Applies   func(strengths StrengthSet, weaknesses WeaknessSet) bool
	Proposals []Recommendation
}

var fallbackRecommendation = Recommendation{
	Formation: Formation433,
	Rationale: "Balanced base shape when there is no clear signal.",
}

// DefaultRules returns the rule table in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "wide-overload",
			Applies: func(s StrengthSet, w WeaknessSet) bool {
				return (s.Has(StrongWings) && w.Has(WeakFullbacks)) ||
					(s.Has(PreciseCrossing) && w.Has(WeakAerial))
			},
			Proposals: []Recommendation{
				{Formation: Formation433, Rationale: "Uses width and crosses from the flanks."},
				{Formation: Formation343, Rationale: "High wing-backs pin the opposing fullbacks and load the box."},
			},
		},
		{
			Name: "central-overload",
			Applies: func(s StrengthSet, w WeaknessSet) bool {
				return (s.Has(InteriorPlay) && w.Has(WeakMidfield)) ||
					(s.Has(CreativePlaymaker) && w.Has(BetweenLines))
			},
			Proposals: []Recommendation{
				{Formation: Formation4231, Rationale: "Controls the central lane and frees the number 10."},
				{Formation: Formation442Diamond, Rationale: "Central superiority with four interior lanes."},
			},
		},
		{
			Name: "attack-depth",
			Applies: func(_ StrengthSet, w WeaknessSet) bool {
				return w.Has(SpaceBehindDefense)
			},
			Proposals: []Recommendation{
				{Formation: Formation433, Rationale: "Wingers attack depth with diagonal runs in behind."},
				{Formation: Formation4222, Rationale: "Two strikers keep attacking the line with constant runs."},
			},
		},
		{
			Name: "compact-counter",
			Applies: func(_ StrengthSet, w WeaknessSet) bool {
				return w.Has(TransitionVulnerable)
			},
			Proposals: []Recommendation{
				{Formation: Formation442, Rationale: "Mid-low block, win the ball and break quickly down the flanks."},
				{Formation: Formation532, Rationale: "Security at the back and two strikers to run into space."},
			},
		},
	}
}

type Recommender struct {
	rules    []Rule
	fallback Recommendation
}

func NewRecommender(rules []Rule) *Recommender {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Recommender{
		rules:    rules,
		fallback: fallbackRecommendation,
	}
}

// Recommend evaluates every rule in order. A formation proposed by more than one
// rule keeps the rationale of the first. When no rule applies the fallback is
// the only entry.
func (r *Recommender) Recommend(strengths StrengthSet, weaknesses WeaknessSet) []Recommendation {
	out := make([]Recommendation, 0, 4)
	seen := make(map[string]struct{}, 4)

	for _, rule := range r.rules {
		if rule.Applies == nil || !rule.Applies(strengths, weaknesses) {
			continue
		}
		for _, proposal := range rule.Proposals {
			if _, ok := seen[proposal.Formation]; ok {
				continue
			}
			seen[proposal.Formation] = struct{}{}
			out = append(out, proposal)
		}
	}

	if len(out) == 0 {
		out = append(out, r.fallback)
	}
	return out
}

// Recommend runs the default rule table.
func Recommend(strengths StrengthSet, weaknesses WeaknessSet) []Recommendation {
	return NewRecommender(nil).Recommend(strengths, weaknesses)
}
