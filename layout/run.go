// SPDX-License-Identifier: MIT

package layout

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/time/rate"
)

// ErrSchedule is returned by Run for an invalid Schedule.
var ErrSchedule = errors.New("layout: invalid schedule")

// Schedule defaults.
const (
	DefaultInitialWeight = 1.0
	DefaultDecay         = 0.999
	DefaultMinWeight     = 0.01
	DefaultMaxSteps      = 2000

	// progressInterval throttles Run's progress log.
	progressInterval = time.Second
)

// Schedule controls Run.
//
// Fields:
//   - InitialWeight: weight of the first step (>= 0).
//   - Decay: per-step weight multiplier in (0, 1].
//   - MinWeight: weight floor (>= 0).
//   - Tolerance: stop once the stress is <= Tolerance (0 disables).
//   - MaxSteps: hard cap on the number of steps (> 0).
//   - Patience: stop after this many steps without improving the best stress
//     by more than PlateauEpsilon (0 disables).
type Schedule struct {
	InitialWeight  float64
	Decay          float64
	MinWeight      float64
	Tolerance      float64
	MaxSteps       int
	Patience       int
	PlateauEpsilon float64
}

// DefaultSchedule returns the weight schedule 1.0, ×0.999 per step, floor
// 0.01, for at most 2000 steps.
func DefaultSchedule() Schedule {
	return Schedule{
		InitialWeight: DefaultInitialWeight,
		Decay:         DefaultDecay,
		MinWeight:     DefaultMinWeight,
		MaxSteps:      DefaultMaxSteps,
	}
}

func finiteNonNeg(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

// Validate reports the first invalid field.
func (s Schedule) Validate() error {
	switch {
	case !finiteNonNeg(s.InitialWeight):
		return fmt.Errorf("InitialWeight=%g: %w", s.InitialWeight, ErrSchedule)
	case !(s.Decay > 0 && s.Decay <= 1):
		return fmt.Errorf("Decay=%g: %w", s.Decay, ErrSchedule)
	case !finiteNonNeg(s.MinWeight):
		return fmt.Errorf("MinWeight=%g: %w", s.MinWeight, ErrSchedule)
	case !(s.Tolerance >= 0):
		return fmt.Errorf("Tolerance=%g: %w", s.Tolerance, ErrSchedule)
	case s.MaxSteps < 1:
		return fmt.Errorf("MaxSteps=%d: %w", s.MaxSteps, ErrSchedule)
	case s.Patience < 0:
		return fmt.Errorf("Patience=%d: %w", s.Patience, ErrSchedule)
	case !finiteNonNeg(s.PlateauEpsilon):
		return fmt.Errorf("PlateauEpsilon=%g: %w", s.PlateauEpsilon, ErrSchedule)
	}

	return nil
}

// StopReason says why Run returned.
type StopReason int

const (
	StopMaxSteps StopReason = iota
	StopTolerance
	StopPlateau
	StopCanceled
)

func (r StopReason) String() string {
	switch r {
	case StopMaxSteps:
		return "max-steps"
	case StopTolerance:
		return "tolerance"
	case StopPlateau:
		return "plateau"
	case StopCanceled:
		return "canceled"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// RunResult summarises a Run.
type RunResult struct {
	Steps  int        // steps performed
	Error  float64    // stress returned by the last step
	Weight float64    // weight used by the last step
	Reason StopReason // why the loop ended
}

// Run calls e.Step with a decaying weight until s says stop or ctx is done.
// ctx is checked between steps; a step in progress is never interrupted.
//
// Errors: ErrSchedule, the context error (with Reason StopCanceled), or any
// error from Step.
func Run(ctx context.Context, e *Engine, s Schedule) (RunResult, error) {
	var res RunResult
	if err := s.Validate(); err != nil {
		return res, fmt.Errorf("Run: %w", err)
	}

	var (
		weight   = s.InitialWeight
		best     = math.Inf(1)
		stale    int
		progress = rate.Sometimes{Interval: progressInterval}
	)
	for res.Steps < s.MaxSteps {
		if err := ctx.Err(); err != nil {
			res.Reason = StopCanceled
			return res, err
		}
		stress, err := e.Step(weight)
		if err != nil {
			return res, fmt.Errorf("Run: step %d: %w", res.Steps+1, err)
		}
		res.Steps++
		res.Error, res.Weight = stress, weight
		progress.Do(func() {
			e.log.Info("layout progress", "step", res.Steps, "stress", stress, "weight", weight)
		})

		if stress <= s.Tolerance {
			res.Reason = StopTolerance
			break
		}
		if s.Patience > 0 {
			if stress < best-s.PlateauEpsilon {
				best, stale = stress, 0
			} else {
				stale++
				if stale >= s.Patience {
					res.Reason = StopPlateau
					break
				}
			}
		}
		weight = math.Max(weight*s.Decay, s.MinWeight)
	}
	e.log.Debug("layout run finished",
		"steps", res.Steps, "stress", res.Error, "reason", res.Reason.String())

	return res, nil
}
