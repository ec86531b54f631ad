// Package evolution implements a seeded differential-evolution minimizer over a
// bounded box.
//
// The search keeps its population in the unit hypercube and scales candidates
// into the caller's bounds only when the objective is evaluated. Every random
// draw comes from a single source seeded by [Config.Seed], and all draws for a
// generation happen before that generation is evaluated, so the result does
// not depend on [Config.Workers].
//
// # Usage
//
//	res, err := evolution.Minimize(func(x []float64) float64 {
//		return x[0]*x[0] + x[1]*x[1]
//	}, []evolution.Bounds{{-5, 5}, {-5, 5}}, evolution.Config{})
package evolution

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoBounds is returned when Minimize is called without any dimension.
	ErrNoBounds = errors.New("evolution: at least one bound is required")

	// ErrInvalidBounds is returned when a lower bound exceeds its upper bound
	// or either side is not finite.
	ErrInvalidBounds = errors.New("evolution: invalid bounds")
)

// Objective maps a candidate vector to the scalar being minimized.
// Implementations must not retain or modify x.
type Objective func(x []float64) float64

// Bounds is the closed search interval of one dimension.
type Bounds struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// Config tunes the search. Zero values are replaced with defaults.
type Config struct {
	PopulationSize int     `json:"populationSize" yaml:"population_size"` // per dimension, default 10
	MaxGenerations int     `json:"maxGenerations" yaml:"max_generations"` // default 50
	MutationMin    float64 `json:"mutationMin" yaml:"mutation_min"`       // default 0.5
	MutationMax    float64 `json:"mutationMax" yaml:"mutation_max"`       // default 1.0
	Recombination  float64 `json:"recombination" yaml:"recombination"`    // default 0.7
	Tolerance      float64 `json:"tolerance" yaml:"tolerance"`            // default 0.01
	AbsTolerance   float64 `json:"absTolerance" yaml:"abs_tolerance"`     // default 0
	Seed           int64   `json:"seed" yaml:"seed"`                      // default 42
	Workers        int     `json:"workers" yaml:"workers"`                // default 1

	// Progress, when set, is called after every generation with the best
	// energy found so far.
	Progress func(generation int, best float64) `json:"-" yaml:"-"`
}

// DefaultConfig returns the configuration used when every field is zero.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 10,
		MaxGenerations: 50,
		MutationMin:    0.5,
		MutationMax:    1.0,
		Recombination:  0.7,
		Tolerance:      0.01,
		Seed:           42,
		Workers:        1,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PopulationSize <= 0 {
		c.PopulationSize = d.PopulationSize
	}
	if c.MaxGenerations <= 0 {
		c.MaxGenerations = d.MaxGenerations
	}
	if c.MutationMin <= 0 && c.MutationMax <= 0 {
		c.MutationMin, c.MutationMax = d.MutationMin, d.MutationMax
	}
	if c.MutationMax < c.MutationMin {
		c.MutationMax = c.MutationMin
	}
	if c.Recombination <= 0 {
		c.Recombination = d.Recombination
	}
	if c.Tolerance <= 0 {
		c.Tolerance = d.Tolerance
	}
	if c.Seed == 0 {
		c.Seed = d.Seed
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	return c
}

// Result is the outcome of a search.
type Result struct {
	X           []float64 `json:"x"`
	Energy      float64   `json:"energy"`
	Generations int       `json:"generations"`
	Evaluations int       `json:"evaluations"`
	Converged   bool      `json:"converged"`
}

// Minimize searches bounds for the vector with the lowest objective value using
// the best/1/bin strategy with dithered mutation and deferred selection.
func Minimize(fn Objective, bounds []Bounds, cfg Config) (Result, error) {
	if len(bounds) == 0 {
		return Result{}, ErrNoBounds
	}
	for i, b := range bounds {
		if math.IsNaN(b.Lower) || math.IsNaN(b.Upper) || math.IsInf(b.Lower, 0) || math.IsInf(b.Upper, 0) || b.Lower > b.Upper {
			return Result{}, fmt.Errorf("%w: dimension %d = [%f, %f]", ErrInvalidBounds, i, b.Lower, b.Upper)
		}
	}

	cfg = cfg.withDefaults()
	s := &search{
		fn:     fn,
		bounds: bounds,
		cfg:    cfg,
		dims:   len(bounds),
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}
	return s.run(), nil
}

type search struct {
	fn       Objective
	bounds   []Bounds
	cfg      Config
	dims     int
	rng      *rand.Rand
	pop      [][]float64
	energies []float64
	nfev     int
}

func (s *search) run() Result {
	size := s.cfg.PopulationSize * s.dims
	if size < 5 {
		size = 5
	}

	s.pop = s.latinHypercube(size)
	s.energies = s.evaluate(s.pop)
	s.promoteBest()

	res := Result{}
	for gen := 1; gen <= s.cfg.MaxGenerations; gen++ {
		trials := s.trials()
		trialEnergies := s.evaluate(trials)

		for i := range s.pop {
			if trialEnergies[i] <= s.energies[i] {
				s.pop[i] = trials[i]
				s.energies[i] = trialEnergies[i]
			}
		}
		s.promoteBest()
		res.Generations = gen

		if s.cfg.Progress != nil {
			s.cfg.Progress(gen, s.energies[0])
		}
		if s.converged() {
			res.Converged = true
			break
		}
	}

	res.X = s.scale(s.pop[0])
	res.Energy = s.energies[0]
	res.Evaluations = s.nfev
	return res
}

// latinHypercube stratifies every dimension into size segments and shuffles
// the segment order independently per dimension.
func (s *search) latinHypercube(size int) [][]float64 {
	seg := 1.0 / float64(size)
	pop := make([][]float64, size)
	for i := range pop {
		pop[i] = make([]float64, s.dims)
		for d := 0; d < s.dims; d++ {
			pop[i][d] = seg*s.rng.Float64() + float64(i)*seg
		}
	}
	for d := 0; d < s.dims; d++ {
		order := s.rng.Perm(size)
		col := make([]float64, size)
		for i, j := range order {
			col[i] = pop[j][d]
		}
		for i := range pop {
			pop[i][d] = col[i]
		}
	}
	return pop
}

// trials draws one mutant per population member. All random numbers for the
// generation are consumed here, in population order.
func (s *search) trials() [][]float64 {
	f := s.cfg.MutationMin
	if s.cfg.MutationMax > s.cfg.MutationMin {
		f += s.rng.Float64() * (s.cfg.MutationMax - s.cfg.MutationMin)
	}

	best := s.pop[0]
	out := make([][]float64, len(s.pop))
	for i := range s.pop {
		r0, r1 := s.pickPair(i)
		trial := make([]float64, s.dims)
		copy(trial, s.pop[i])

		fill := s.rng.Intn(s.dims)
		for d := 0; d < s.dims; d++ {
			cross := s.rng.Float64() < s.cfg.Recombination
			if cross || d == fill {
				trial[d] = best[d] + f*(s.pop[r0][d]-s.pop[r1][d])
			}
		}
		for d := 0; d < s.dims; d++ {
			if trial[d] < 0 || trial[d] > 1 {
				trial[d] = s.rng.Float64()
			}
		}
		out[i] = trial
	}
	return out
}

// pickPair returns two distinct population indexes different from exclude.
func (s *search) pickPair(exclude int) (int, int) {
	n := len(s.pop)
	r0 := s.rng.Intn(n - 1)
	if r0 >= exclude {
		r0++
	}
	r1 := s.rng.Intn(n - 2)
	lo, hi := exclude, r0
	if lo > hi {
		lo, hi = hi, lo
	}
	if r1 >= lo {
		r1++
	}
	if r1 >= hi {
		r1++
	}
	return r0, r1
}

// evaluate scores every candidate. Results are written by index so the
// worker count never changes the outcome.
func (s *search) evaluate(cands [][]float64) []float64 {
	out := make([]float64, len(cands))
	s.nfev += len(cands)

	if s.cfg.Workers <= 1 {
		for i, c := range cands {
			out[i] = s.energy(c)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)
	for i, c := range cands {
		i, c := i, c
		g.Go(func() error {
			out[i] = s.energy(c)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *search) energy(unit []float64) float64 {
	e := s.fn(s.scale(unit))
	if math.IsNaN(e) {
		return math.Inf(1)
	}
	return e
}

func (s *search) scale(unit []float64) []float64 {
	x := make([]float64, s.dims)
	for d, b := range s.bounds {
		x[d] = b.Lower + unit[d]*(b.Upper-b.Lower)
	}
	return x
}

// promoteBest swaps the lowest-energy member into slot 0. Ties keep the
// earlier index.
func (s *search) promoteBest() {
	best := 0
	for i, e := range s.energies {
		if e < s.energies[best] {
			best = i
		}
	}
	if best != 0 {
		s.pop[0], s.pop[best] = s.pop[best], s.pop[0]
		s.energies[0], s.energies[best] = s.energies[best], s.energies[0]
	}
}

func (s *search) converged() bool {
	var sum float64
	for _, e := range s.energies {
		if math.IsInf(e, 0) {
			return false
		}
		sum += e
	}
	mean := sum / float64(len(s.energies))

	var sq float64
	for _, e := range s.energies {
		sq += (e - mean) * (e - mean)
	}
	std := math.Sqrt(sq / float64(len(s.energies)))
	return std <= s.cfg.AbsTolerance+s.cfg.Tolerance*math.Abs(mean)
}
