package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yigit/academictwin/internal/pkg/apperrors"
	"github.com/yigit/academictwin/internal/pkg/validation"
	"github.com/yigit/academictwin/internal/simulation"
)

// scenarioFile is the YAML document read by `simctl run` and `simctl optimize`.
//
//	student:
//	  name: Ada
//	courses:
//	  - name: Algorithms
//	    credits: 4
//	    difficulty_score: 8
//	    weekly_workload_hours: 6
//	scenario:
//	  num_weeks: 16
//	  work_hours_per_week: 10
//	  study_strategy: spaced
type scenarioFile struct {
	Student  simulation.StudentProfile `yaml:"student"`
	Courses  []simulation.CourseRef    `yaml:"courses"`
	Scenario simulation.ScenarioConfig `yaml:"scenario"`
}

// loadScenarioFile parses and validates path. Scenario fields left out of the
// file keep their defaults. Courses without an id get the lowest id no other
// course uses. Course names and ids must be unique.
func loadScenarioFile(path string) (*scenarioFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	f := &scenarioFile{Scenario: simulation.DefaultScenarioConfig()}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
	}

	if f.Student.Name == "" {
		f.Student.Name = "cli"
	}
	f.Scenario.StudentID = f.Student.ID
	if f.Scenario.IncludeCourseIDs == nil {
		f.Scenario.IncludeCourseIDs = []int64{}
	}

	if err := assignCourseIDs(f.Courses); err != nil {
		return nil, err
	}

	names := make(map[string]int, len(f.Courses))
	for i := range f.Courses {
		c := &f.Courses[i]
		c.Name = strings.TrimSpace(c.Name)
		if first, ok := names[c.Name]; ok {
			return nil, fmt.Errorf("course %d: %w: name %q already used by course %d",
				i+1, apperrors.ErrValidationFailed, c.Name, first)
		}
		names[c.Name] = i + 1

		if c.Credits == 0 {
			c.Credits = simulation.DefaultCredits
		}
		if c.DifficultyScore == 0 {
			c.DifficultyScore = 5
		}
		if c.WeeklyWorkloadHours == 0 {
			c.WeeklyWorkloadHours = 3
		}
		if err := validation.ValidateCourse(*c); err != nil {
			return nil, fmt.Errorf("course %d: %w", i+1, err)
		}
	}

	if err := validation.ValidateScenario(f.Scenario); err != nil {
		return nil, err
	}
	return f, nil
}

// assignCourseIDs rejects repeated explicit ids, then numbers the remaining
// courses from 1 skipping ids already taken.
func assignCourseIDs(courses []simulation.CourseRef) error {
	taken := make(map[int64]int, len(courses))
	for i, c := range courses {
		if c.ID == 0 {
			continue
		}
		if first, ok := taken[c.ID]; ok {
			return fmt.Errorf("course %d: %w: id %d already used by course %d",
				i+1, apperrors.ErrValidationFailed, c.ID, first)
		}
		taken[c.ID] = i + 1
	}

	next := int64(1)
	for i := range courses {
		if courses[i].ID != 0 {
			continue
		}
		for taken[next] != 0 {
			next++
		}
		courses[i].ID = next
		taken[next] = i + 1
	}
	return nil
}
