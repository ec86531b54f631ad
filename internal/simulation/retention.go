package simulation

import "math"

// DefaultReviewIntervalDays is one review per simulated week.
const DefaultReviewIntervalDays = 7

// Stability returns the forgetting-curve stability in days for a strategy.
// Unknown strategies get the mixed value.
func Stability(strategy StudyStrategy) float64 {
	switch strategy {
	case StrategySpaced:
		return 21
	case StrategyCramming:
		return 4
	default:
		return 10
	}
}

func forgettingDecay(days int, stability float64) float64 {
	if days <= 0 {
		return 1
	}
	return math.Exp(-float64(days) / math.Max(stability, 0.1))
}

// StudyGain is the share of the remaining headroom that one week of study
// closes. Returns saturate at ten hours.
func StudyGain(studyHours float64, strategy StudyStrategy, days int) float64 {
	effort := math.Min(studyHours/10, 1)
	if effort < 0 {
		effort = 0
	}
	gain := 0.6 * math.Log1p(4*effort) / math.Log1p(4)

	switch {
	case strategy == StrategySpaced && days >= 3:
		gain *= 1.25
	case strategy == StrategyCramming:
		gain *= 0.8
	}
	return gain
}

// UpdateRetention decays prior retention over days and then fills part of the
// gap to 1 with this week's study gain. The result is clamped to [0, 1].
func UpdateRetention(prior, studyHours float64, strategy StudyStrategy, days int) float64 {
	decayed := prior * forgettingDecay(days, Stability(strategy))
	gain := StudyGain(studyHours, strategy, days)
	return clamp(decayed+gain*(1-decayed), 0, 1)
}

// SemesterRetentionCurve applies UpdateRetention for weeks consecutive weeks
// at constant study hours, starting from zero retention.
func SemesterRetentionCurve(weeks int, studyHours float64, strategy StudyStrategy) []float64 {
	if weeks <= 0 {
		return []float64{}
	}
	curve := make([]float64, weeks)
	var r float64
	for i := range curve {
		r = UpdateRetention(r, studyHours, strategy, DefaultReviewIntervalDays)
		curve[i] = r
	}
	return curve
}
