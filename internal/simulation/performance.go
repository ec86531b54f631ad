package simulation

import "sort"

// DefaultCredits is used for a graded course with no credit entry.
const DefaultCredits = 3

type gradeStep struct {
	min    float64
	points float64
}

// gradeScale is ordered from the highest threshold down.
var gradeScale = []gradeStep{
	{93, 4.0},
	{90, 3.7},
	{87, 3.3},
	{83, 3.0},
	{80, 2.7},
	{77, 2.3},
	{73, 2.0},
	{70, 1.7},
	{67, 1.3},
	{63, 1.0},
	{60, 0.7},
	{0, 0.0},
}

// StudyDemand is the weekly study a course asks for, scaled by difficulty.
func StudyDemand(c CourseRef) float64 {
	return c.WeeklyWorkloadHours * (c.DifficultyScore / 5)
}

// PredictGrade maps a week's study, load and retention for one course to a
// percentage in [0, 100]. The base curve runs from 40 to 95 around a study to
// demand ratio of 1; load above the overload threshold costs half a point per
// unit and retention adds up to ten points.
func PredictGrade(c CourseRef, studyHours, cognitiveLoad, retention float64) float64 {
	ratio := studyHours / max(StudyDemand(c), 0.5)
	base := 40 + 55*sigmoid(ratio, 1, 2.5)

	var penalty float64
	if cognitiveLoad > OverloadThreshold {
		penalty = (cognitiveLoad - OverloadThreshold) * 0.5
	}
	return clamp(base-penalty+retention*10, 0, 100)
}

// GradeToGPAPoints converts a percentage to 4.0-scale points using the
// highest threshold the grade reaches.
func GradeToGPAPoints(pct float64) float64 {
	for _, s := range gradeScale {
		if pct >= s.min {
			return s.points
		}
	}
	return 0
}

// ComputeGPA returns the credit-weighted GPA of grades keyed by course name,
// rounded to two places. Courses missing from credits count as three credits.
func ComputeGPA(grades map[string]float64, credits map[string]int) float64 {
	if len(grades) == 0 {
		return 0
	}

	var quality float64
	var total int
	for _, name := range sortedKeys(grades) {
		cr, ok := credits[name]
		if !ok {
			cr = DefaultCredits
		}
		quality += GradeToGPAPoints(grades[name]) * float64(cr)
		total += cr
	}
	if total <= 0 {
		return 0
	}
	return round(quality/float64(total), 2)
}

// ComputeSemesterGPA averages each course's grade over every week and then
// computes the GPA of those averages. The course set is taken from the
// first week.
func ComputeSemesterGPA(weekly []map[string]float64, credits map[string]int) float64 {
	if len(weekly) == 0 {
		return 0
	}

	avg := make(map[string]float64, len(weekly[0]))
	for name := range weekly[0] {
		var sum float64
		for _, week := range weekly {
			sum += week[name]
		}
		avg[name] = sum / float64(len(weekly))
	}
	return ComputeGPA(avg, credits)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
