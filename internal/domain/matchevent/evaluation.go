package matchevent

import (
	"fmt"
	"math"
)

// DefaultXGThreshold separates a good mean xG per shot from one that needs work.
const DefaultXGThreshold = 0.1

type Rating string

const (
	RatingNoShots          Rating = "no_shots"
	RatingGood             Rating = "good"
	RatingNeedsImprovement Rating = "needs_improvement"
)

type PlayerEvaluation struct {
	Player            string   `json:"player"`
	Shots             int      `json:"shots"`
	MeanExpectedGoals *float64 `json:"mean_expected_goals,omitempty"`
	Rating            Rating   `json:"rating"`
	Message           string   `json:"message"`
}

// EvaluatePlayer rates a player's mean xG per shot against threshold. A
// non-positive threshold uses DefaultXGThreshold.
func EvaluatePlayer(events []EventRecord, player string, threshold float64) PlayerEvaluation {
	if threshold <= 0 {
		threshold = DefaultXGThreshold
	}

	shots := 0
	for _, e := range events {
		if e.IsShot() && e.PlayerName == player {
			shots++
		}
	}

	out := PlayerEvaluation{Player: player, Shots: shots}
	mean, ok := MeanExpectedGoals(events, player)
	if shots == 0 {
		out.Rating = RatingNoShots
		out.Message = fmt.Sprintf("No shots recorded for %s.", player)
		return out
	}
	if !ok {
		// Shots exist but none carries xG; the rating stays no_shots.
		out.Rating = RatingNoShots
		out.Message = fmt.Sprintf("No xG data for %s's %s.", player, pluralShots(shots))
		return out
	}

	out.MeanExpectedGoals = &mean
	if mean >= threshold {
		out.Rating = RatingGood
		out.Message = fmt.Sprintf("%s has a good average xG: %.2f.", player, mean)
	} else {
		out.Rating = RatingNeedsImprovement
		out.Message = fmt.Sprintf("%s could improve with an average xG of %.2f.", player, mean)
	}
	return out
}

func pluralShots(n int) string {
	if n == 1 {
		return "1 shot"
	}
	return fmt.Sprintf("%d shots", n)
}

type ProbabilityBand string

const (
	BandLow        ProbabilityBand = "low"
	BandBalanced   ProbabilityBand = "balanced"
	BandFavourable ProbabilityBand = "favourable"
)

type Probability struct {
	OwnExpectedGoals   float64         `json:"own_expected_goals"`
	RivalExpectedGoals float64         `json:"rival_expected_goals"`
	Percent            float64         `json:"percent"`
	Band               ProbabilityBand `json:"band"`
}

// WinProbability estimates the own side's win chance from accumulated xG as a
// percentage rounded to one decimal. Without any xG both sides get 50.
func WinProbability(ownXG, rivalXG float64) Probability {
	ownXG = math.Max(ownXG, 0)
	rivalXG = math.Max(rivalXG, 0)

	percent := 50.0
	if total := ownXG + rivalXG; total > 0 {
		percent = math.Round(1000*ownXG/total) / 10
	}

	band := BandFavourable
	switch {
	case percent < 35:
		band = BandLow
	case percent <= 65:
		band = BandBalanced
	}

	return Probability{
		OwnExpectedGoals:   ownXG,
		RivalExpectedGoals: rivalXG,
		Percent:            percent,
		Band:               band,
	}
}
