// Package census tracks one simulation run's population trajectory and
// derives summary statistics, an HTML chart, and a PNG plot from it.
package census

import (
	"sync"

	"github.com/banshee-data/lifegrid/internal/monitoring"
	"gonum.org/v1/gonum/stat"
)

// Sample is one recorded observation of the run.
type Sample struct {
	Generation int `json:"generation"`
	Population int `json:"population"`
}

// Summary describes a whole run.
type Summary struct {
	// Generations is the latest recorded generation.
	Generations int `json:"generations"`
	// Mean and StdDev are computed over the recorded populations.
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	// Peak is the largest recorded population and PeakGeneration the first
	// generation that reached it.
	Peak           int `json:"peak"`
	PeakGeneration int `json:"peak_generation"`
	// Extinct reports whether the most recent population is zero.
	Extinct bool `json:"extinct"`
}

// Ledger accumulates samples for a single run. Safe for concurrent use.
type Ledger struct {
	mu      sync.Mutex
	runID   string
	samples []Sample
}

// NewLedger creates an empty ledger for the given run.
func NewLedger(runID string) *Ledger {
	return &Ledger{runID: runID}
}

// RunID returns the run identifier this ledger was created with.
func (l *Ledger) RunID() string {
	return l.runID
}

// Record appends one observation. Generations must arrive in increasing
// order; a sample at or before the latest recorded generation is dropped
// so a double publish cannot corrupt the series.
func (l *Ledger) Record(generation, population int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n := len(l.samples); n > 0 && generation <= l.samples[n-1].Generation {
		monitoring.Logf("[Census] dropping out-of-order sample for run %s: generation %d after %d",
			l.runID, generation, l.samples[n-1].Generation)
		return
	}
	l.samples = append(l.samples, Sample{Generation: generation, Population: population})
}

// Snapshot returns a copy of the recorded history.
func (l *Ledger) Snapshot() []Sample {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Sample, len(l.samples))
	copy(out, l.samples)
	return out
}

// Summary computes run statistics over the recorded samples. An empty
// ledger yields the zero Summary.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.samples) == 0 {
		return Summary{}
	}

	pops := make([]float64, len(l.samples))
	peak := l.samples[0]
	for i, s := range l.samples {
		pops[i] = float64(s.Population)
		if s.Population > peak.Population {
			peak = s
		}
	}

	last := l.samples[len(l.samples)-1]
	sum := Summary{
		Generations:    last.Generation,
		Mean:           stat.Mean(pops, nil),
		Peak:           peak.Population,
		PeakGeneration: peak.Generation,
		Extinct:        last.Population == 0,
	}
	// stat.StdDev is the sample deviation; a single observation has none.
	if len(pops) > 1 {
		sum.StdDev = stat.StdDev(pops, nil)
	}
	return sum
}
