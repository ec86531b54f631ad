package simulation

import "math"

// Burnout label cut points.
const (
	burnoutMediumCut = 0.33
	burnoutHighCut   = 0.66
)

// ComputeRecovery returns next week's fatigue. Sleep and recovery time pull
// fatigue down (by at most 0.5 and 0.2), each hour of sleep below 49 per week
// pushes it up by 0.015.
func ComputeRecovery(fatigue, sleepHours, recoveryHours float64) float64 {
	sleepRecovery := math.Min(sleepHours/fullSleepHours*0.5, 0.5)
	recoveryBenefit := math.Min(recoveryHours/10*0.2, 0.2)
	penalty := math.Max(0, fullSleepHours-sleepHours) * 0.015
	return clamp(fatigue+penalty-sleepRecovery-recoveryBenefit, 0, 1)
}

// ComputeBurnoutProbability scores the history so far with a logistic over
// four weighted factors: mean load, share of overload weeks, the longest
// overload streak and mean sleep deficit. Empty history scores 0.
//
// recoveryHist is accepted for symmetry with the weekly pipeline and does
// not affect the score.
func ComputeBurnoutProbability(loadHist, sleepHist, recoveryHist []float64) float64 {
	_ = recoveryHist
	if len(loadHist) == 0 {
		return 0
	}
	n := float64(len(loadHist))

	var overload int
	for _, l := range loadHist {
		if l > OverloadThreshold {
			overload++
		}
	}
	streak := longestStreak(loadHist, OverloadThreshold)

	meanSleep := fullSleepHours
	if len(sleepHist) > 0 {
		meanSleep = mean(sleepHist)
	}
	deficit := math.Max(0, fullSleepHours-meanSleep)

	raw := 0.35*mean(loadHist)/100 +
		0.25*float64(overload)/n +
		0.20*math.Min(float64(streak)/8, 1) +
		0.20*math.Min(deficit/21, 1)

	return clamp(1/(1+math.Exp(-10*(raw-0.45))), 0, 1)
}

// BurnoutRiskLabel buckets a probability into LOW, MEDIUM or HIGH.
func BurnoutRiskLabel(p float64) BurnoutRisk {
	switch {
	case p < burnoutMediumCut:
		return BurnoutLow
	case p < burnoutHighCut:
		return BurnoutMedium
	default:
		return BurnoutHigh
	}
}

func longestStreak(values []float64, threshold float64) int {
	var best, cur int
	for _, v := range values {
		if v > threshold {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 0
		}
	}
	return best
}
