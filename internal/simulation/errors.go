package simulation

import "errors"

// ErrNoCoursesSelected is returned by Engine.Run when the include filter
// leaves no course to simulate. Check with errors.Is.
var ErrNoCoursesSelected = errors.New("No courses selected for simulation.")
