package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mixedCourses() []CourseRef {
	return []CourseRef{
		{ID: 10, Name: "Calculus", Credits: 4, DifficultyScore: 8, WeeklyWorkloadHours: 6},
		{ID: 20, Name: "Physics", Credits: 3, DifficultyScore: 7.5, WeeklyWorkloadHours: 5},
		{ID: 30, Name: "Writing", Credits: 2, DifficultyScore: 3, WeeklyWorkloadHours: 2},
	}
}

func TestComputeWeeklyLoadEmpty(t *testing.T) {
	assert.Zero(t, ComputeWeeklyLoad(nil, nil, 0.5, 20))
}

func TestComputeWeeklyLoadRaw(t *testing.T) {
	c := CourseRef{ID: 1, DifficultyScore: 5}
	// 5 * 3 / 30 * 100 = 50
	load := ComputeWeeklyLoad([]CourseRef{c}, map[int64]float64{1: 3}, 0, 49)
	assert.InDelta(t, 50.0, load, 1e-9)

	tired := ComputeWeeklyLoad([]CourseRef{c}, map[int64]float64{1: 3}, 0.5, 49)
	assert.InDelta(t, 60.0, tired, 1e-9)
}

func TestComputeWeeklyLoadPenalties(t *testing.T) {
	courses := []CourseRef{
		{ID: 1, DifficultyScore: 8},
		{ID: 2, DifficultyScore: 9},
		{ID: 3, DifficultyScore: 7},
	}
	// two courses above 7 add one sequencing step, no study hours at all
	assert.InDelta(t, 5.0, ComputeWeeklyLoad(courses, map[int64]float64{}, 0, 49), 1e-9)

	// seven hours of missing sleep add 14
	assert.InDelta(t, 19.0, ComputeWeeklyLoad(courses, map[int64]float64{}, 0, 42), 1e-9)
}

func TestComputeWeeklyLoadClamped(t *testing.T) {
	c := CourseRef{ID: 1, DifficultyScore: 10}
	assert.Equal(t, MaxLoad, ComputeWeeklyLoad([]CourseRef{c}, map[int64]float64{1: 200}, 1, 0))
}

func TestAccumulateLoad(t *testing.T) {
	out := AccumulateLoad([]float64{10, 10, 0}, DefaultLoadDecay)
	require.Len(t, out, 3)
	assert.InDelta(t, 10.0, out[0], 1e-9)
	assert.InDelta(t, 18.5, out[1], 1e-9)
	assert.InDelta(t, 15.725, out[2], 1e-9)

	capped := AccumulateLoad([]float64{90, 90, 90}, DefaultLoadDecay)
	for _, v := range capped {
		assert.LessOrEqual(t, v, MaxLoad)
	}
	assert.Empty(t, AccumulateLoad(nil, DefaultLoadDecay))
}

func TestDistributeStudyHoursEqual(t *testing.T) {
	courses := mixedCourses()
	out := DistributeStudyHours(courses, 30, DistributeEqual)
	require.Len(t, out, len(courses))
	for _, c := range courses {
		assert.Equal(t, 10.0, out[c.ID])
	}
}

func TestDistributeStudyHoursSumsToTotal(t *testing.T) {
	courses := mixedCourses()
	for _, mode := range []Distribution{DistributeProportional, DistributeWorkload, DistributeEqual, ""} {
		t.Run(string(mode), func(t *testing.T) {
			out := DistributeStudyHours(courses, 47.3, mode)
			var sum float64
			for _, h := range out {
				sum += h
			}
			assert.InDelta(t, 47.3, sum, 1e-6)
		})
	}
}

func TestDistributeStudyHoursProportionalWeights(t *testing.T) {
	courses := mixedCourses()
	out := DistributeStudyHours(courses, 37, DistributeProportional)
	// difficulties sum to 18.5
	assert.InDelta(t, 16.0, out[10], 1e-9)
	assert.InDelta(t, 15.0, out[20], 1e-9)
	assert.InDelta(t, 6.0, out[30], 1e-9)

	byWorkload := DistributeStudyHours(courses, 26, DistributeWorkload)
	assert.InDelta(t, 12.0, byWorkload[10], 1e-9)
	assert.InDelta(t, 10.0, byWorkload[20], 1e-9)
	assert.InDelta(t, 4.0, byWorkload[30], 1e-9)
}

func TestDistributeStudyHoursEdgeCases(t *testing.T) {
	assert.Empty(t, DistributeStudyHours(nil, 10, DistributeProportional))

	zero := []CourseRef{{ID: 1}, {ID: 2}}
	out := DistributeStudyHours(zero, 10, DistributeProportional)
	assert.Equal(t, map[int64]float64{1: 0, 2: 0}, out)
}
