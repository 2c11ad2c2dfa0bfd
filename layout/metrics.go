// SPDX-License-Identifier: MIT

package layout

import (
	"math"
	"sync/atomic"
	"time"
)

// Collector receives engine events. Implement it to bridge a monitoring
// system; methods are called from the goroutine running Step.
type Collector interface {
	// RecordStep is called after each successful step with its wall time
	// and returned stress.
	RecordStep(mode Mode, d time.Duration, stress float64)

	// RecordHeal is called when n elements had NaN coordinates re-drawn.
	RecordHeal(n int)
}

// NoopCollector discards every event.
type NoopCollector struct{}

func (NoopCollector) RecordStep(Mode, time.Duration, float64) {}
func (NoopCollector) RecordHeal(int)                          {}

// BasicCollector keeps in-memory counters.
type BasicCollector struct {
	steps      [modeCount]atomic.Int64
	stepNanos  atomic.Int64
	heals      atomic.Int64
	healEvents atomic.Int64
	lastStress atomic.Uint64 // math.Float64bits
}

// RecordStep implements Collector.
func (b *BasicCollector) RecordStep(mode Mode, d time.Duration, stress float64) {
	if mode.Valid() {
		b.steps[mode].Add(1)
	}
	b.stepNanos.Add(d.Nanoseconds())
	b.lastStress.Store(math.Float64bits(stress))
}

// RecordHeal implements Collector.
func (b *BasicCollector) RecordHeal(n int) {
	b.healEvents.Add(1)
	b.heals.Add(int64(n))
}

// Stats is a point-in-time copy of BasicCollector.
type Stats struct {
	Steps        int64
	StepsByMode  map[Mode]int64
	AvgStepNanos int64
	HealEvents   int64
	HealedCount  int64
	LastStress   float64
}

// Snapshot returns the current counters.
func (b *BasicCollector) Snapshot() Stats {
	s := Stats{
		StepsByMode: make(map[Mode]int64, modeCount),
		HealEvents:  b.healEvents.Load(),
		HealedCount: b.heals.Load(),
		LastStress:  math.Float64frombits(b.lastStress.Load()),
	}
	for m := Exhaustive; m < modeCount; m++ {
		if n := b.steps[m].Load(); n > 0 {
			s.StepsByMode[m] = n
			s.Steps += n
		}
	}
	if s.Steps > 0 {
		s.AvgStepNanos = b.stepNanos.Load() / s.Steps
	}

	return s
}
