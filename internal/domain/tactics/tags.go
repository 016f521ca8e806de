package tactics

import (
	"fmt"
	"strings"
)

// Strength is a tag describing the own team.
type Strength string

const (
	StrongWings       Strength = "StrongWings"
	PreciseCrossing   Strength = "PreciseCrossing"
	InteriorPlay      Strength = "InteriorPlay"
	CreativePlaymaker Strength = "CreativePlaymaker"
	HighPress         Strength = "HighPress"
)

// Weakness is a tag describing the opponent.
type Weakness string

const (
	WeakFullbacks        Weakness = "WeakFullbacks"
	WeakAerial           Weakness = "WeakAerial"
	WeakMidfield         Weakness = "WeakMidfield"
	BetweenLines         Weakness = "BetweenLines"
	SpaceBehindDefense   Weakness = "SpaceBehindDefense"
	TransitionVulnerable Weakness = "TransitionVulnerable"
)

// TagInfo describes one vocabulary entry.
type TagInfo struct {
	Tag         string `json:"tag"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var strengthVocabulary = []TagInfo{
	{Tag: string(StrongWings), Label: "Bandas fuertes", Description: "Strong wide players"},
	{Tag: string(PreciseCrossing), Label: "Centros precisos", Description: "Accurate crossing"},
	{Tag: string(InteriorPlay), Label: "Juego interior", Description: "Good combination play through the centre"},
	{Tag: string(CreativePlaymaker), Label: "Mediapunta creativo", Description: "Creative attacking midfielder"},
	{Tag: string(HighPress), Label: "Presión alta", Description: "Effective high press"},
}

var weaknessVocabulary = []TagInfo{
	{Tag: string(WeakFullbacks), Label: "Laterales débiles", Description: "Fullbacks struggle one against one"},
	{Tag: string(WeakAerial), Label: "Juego aéreo débil", Description: "Loses aerial duels"},
	{Tag: string(WeakMidfield), Label: "Mediocentro débil", Description: "Weak central midfield"},
	{Tag: string(BetweenLines), Label: "Entre líneas", Description: "Leaves space between the lines"},
	{Tag: string(SpaceBehindDefense), Label: "Espalda de la defensa", Description: "Vulnerable to balls in behind"},
	{Tag: string(TransitionVulnerable), Label: "Sufre transiciones", Description: "Exposed in transition"},
}

func Strengths() []TagInfo {
	return append([]TagInfo(nil), strengthVocabulary...)
}

func Weaknesses() []TagInfo {
	return append([]TagInfo(nil), weaknessVocabulary...)
}

var (
	strengthLookup = buildLookup(strengthVocabulary)
	weaknessLookup = buildLookup(weaknessVocabulary)
)

// ParseStrength accepts the tag, its snake_case spelling or its dashboard label.
func ParseStrength(raw string) (Strength, error) {
	tag, ok := strengthLookup[lookupKey(raw)]
	if !ok {
		return "", fmt.Errorf("unknown strength tag %q", raw)
	}
	return Strength(tag), nil
}

// ParseWeakness accepts the tag, its snake_case spelling or its dashboard label.
func ParseWeakness(raw string) (Weakness, error) {
	tag, ok := weaknessLookup[lookupKey(raw)]
	if !ok {
		return "", fmt.Errorf("unknown weakness tag %q", raw)
	}
	return Weakness(tag), nil
}

func buildLookup(vocabulary []TagInfo) map[string]string {
	out := make(map[string]string, len(vocabulary)*2)
	for _, item := range vocabulary {
		out[lookupKey(item.Tag)] = item.Tag
		out[lookupKey(item.Label)] = item.Tag
	}
	return out
}

func lookupKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		switch r {
		case '_', '-', ' ':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type StrengthSet map[Strength]struct{}

func NewStrengthSet(tags ...Strength) StrengthSet {
	out := make(StrengthSet, len(tags))
	for _, tag := range tags {
		out[tag] = struct{}{}
	}
	return out
}

func (s StrengthSet) Has(tag Strength) bool {
	_, ok := s[tag]
	return ok
}

type WeaknessSet map[Weakness]struct{}

func NewWeaknessSet(tags ...Weakness) WeaknessSet {
	out := make(WeaknessSet, len(tags))
	for _, tag := range tags {
		out[tag] = struct{}{}
	}
	return out
}

func (s WeaknessSet) Has(tag Weakness) bool {
	_, ok := s[tag]
	return ok
}
