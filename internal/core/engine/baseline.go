package engine

import "math"

// BaselineSurvival approximates the population survival curve with a single
// exponential hazard: S0(t) = exp(-lambda * t), t in days.
func BaselineSurvival(days, lambda float64) float64 {
	return math.Exp(-lambda * days)
}
