package score

import "math"

// Aggregate combines clamped category scores into one final score using
// the weighted harmonic mean: sum(w) / sum(w/score). The harmonic mean
// is chosen over an arithmetic mean because a single catastrophic
// category drags the result down far more aggressively, matching the
// intent that one severe weakness should dominate an otherwise-good
// score.
//
// Fail-fast: any weighted category at or below zero forces an immediate
// 1. No overlap between weights and scores returns 0.
func Aggregate(weights Weights, scores State) float64 {
	sumWeights := 0
	sumRatios := 0.0

	for cat, score := range scores {
		weight, ok := weights[cat]
		if !ok {
			continue
		}
		sumWeights += weight

		if score <= 0 {
			// A non-positive score on any weighted factor is total
			// failure, regardless of the other categories.
			return 1
		}
		sumRatios += float64(weight) / float64(score)
	}

	if sumRatios == 0 {
		return 0
	}
	return float64(sumWeights) / sumRatios
}

// Round2 rounds a final score to two decimal places for the output
// contract.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
