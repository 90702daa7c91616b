package census

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededLedger(t *testing.T, pops ...int) *Ledger {
	t.Helper()
	l := NewLedger("test-run")
	for gen, pop := range pops {
		l.Record(gen, pop)
	}
	return l
}

// ---------------------------------------------------------------------------
// Recording
// ---------------------------------------------------------------------------

func TestLedger_RecordAndSnapshot(t *testing.T) {
	t.Parallel()

	l := seededLedger(t, 5, 7, 3)

	got := l.Snapshot()
	want := []Sample{
		{Generation: 0, Population: 5},
		{Generation: 1, Population: 7},
		{Generation: 2, Population: 3},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, "test-run", l.RunID())
}

func TestLedger_SnapshotIsACopy(t *testing.T) {
	t.Parallel()

	l := seededLedger(t, 5, 7)

	snap := l.Snapshot()
	snap[0].Population = 999

	fresh := l.Snapshot()
	assert.Equal(t, 5, fresh[0].Population)
}

func TestLedger_DropsOutOfOrderSamples(t *testing.T) {
	t.Parallel()

	l := NewLedger("test-run")
	l.Record(0, 5)
	l.Record(1, 7)
	l.Record(1, 99) // duplicate publish
	l.Record(0, 99) // regression

	snap := l.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, Sample{Generation: 1, Population: 7}, snap[1])
}

// ---------------------------------------------------------------------------
// Summary
// ---------------------------------------------------------------------------

func TestLedger_Summary(t *testing.T) {
	t.Parallel()

	l := seededLedger(t, 2, 4, 6)

	sum := l.Summary()
	assert.Equal(t, 2, sum.Generations)
	assert.InDelta(t, 4.0, sum.Mean, 1e-9)
	assert.InDelta(t, 2.0, sum.StdDev, 1e-9)
	assert.Equal(t, 6, sum.Peak)
	assert.Equal(t, 2, sum.PeakGeneration)
	assert.False(t, sum.Extinct)
}

func TestLedger_SummaryEmpty(t *testing.T) {
	t.Parallel()

	l := NewLedger("test-run")
	assert.Equal(t, Summary{}, l.Summary())
}

func TestLedger_SummarySingleSample(t *testing.T) {
	t.Parallel()

	l := seededLedger(t, 9)

	sum := l.Summary()
	assert.Equal(t, 0, sum.Generations)
	assert.InDelta(t, 9.0, sum.Mean, 1e-9)
	assert.Zero(t, sum.StdDev)
	assert.Equal(t, 9, sum.Peak)
}

func TestLedger_SummaryExtinction(t *testing.T) {
	t.Parallel()

	l := seededLedger(t, 4, 2, 0)

	sum := l.Summary()
	assert.True(t, sum.Extinct)
	assert.Equal(t, 4, sum.Peak)
	assert.Equal(t, 0, sum.PeakGeneration)
}

func TestLedger_SummaryPeakIsFirstOccurrence(t *testing.T) {
	t.Parallel()

	l := seededLedger(t, 3, 8, 8, 5)

	sum := l.Summary()
	assert.Equal(t, 8, sum.Peak)
	assert.Equal(t, 1, sum.PeakGeneration)
}

// ---------------------------------------------------------------------------
// Chart and plot output
// ---------------------------------------------------------------------------

func TestRenderChart_ProducesHTML(t *testing.T) {
	t.Parallel()

	l := seededLedger(t, 5, 7, 3)

	var sb strings.Builder
	require.NoError(t, l.RenderChart(&sb))

	html := sb.String()
	assert.Contains(t, html, "Population by Generation")
	assert.Contains(t, html, "population")
	assert.Contains(t, html, "test-run")
}

func TestSavePlot_WritesPNG(t *testing.T) {
	t.Parallel()

	l := seededLedger(t, 5, 7, 3)
	dir := t.TempDir()

	path, err := l.SavePlot(dir)
	require.NoError(t, err)
	assert.Contains(t, path, "population_test-run.png")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSavePlot_SanitizesRunID(t *testing.T) {
	t.Parallel()

	l := NewLedger("runs/../7!")
	l.Record(0, 3)
	dir := t.TempDir()

	path, err := l.SavePlot(dir)
	require.NoError(t, err)

	// A hostile run ID must not steer the file outside dir.
	assert.Equal(t, dir, filepath.Dir(path))
	assert.NotContains(t, filepath.Base(path), "/")

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSavePlot_EmptyLedger(t *testing.T) {
	t.Parallel()

	l := NewLedger("test-run")
	_, err := l.SavePlot(t.TempDir())
	assert.Error(t, err)
}
