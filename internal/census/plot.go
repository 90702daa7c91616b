package census

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/lifegrid/internal/security"
)

// SavePlot writes a PNG plot of population over generations to dir, creating
// the directory if needed, and returns the path of the written file.
func (l *Ledger) SavePlot(dir string) (string, error) {
	samples := l.Snapshot()
	if len(samples) == 0 {
		return "", fmt.Errorf("no samples recorded for run %s", l.runID)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	pts := make(plotter.XYs, 0, len(samples))
	for _, s := range samples {
		pts = append(pts, plotter.XY{X: float64(s.Generation), Y: float64(s.Population)})
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Population - run %s", l.runID)
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Population"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("build population line: %w", err)
	}
	line.Width = vg.Points(1)
	p.Add(plotter.NewGrid(), line)
	p.Legend.Add("population", line)
	p.Legend.Top = true

	// The run ID lands in the file name, so strip anything path-hostile.
	out := filepath.Join(dir, fmt.Sprintf("population_%s.png", security.SanitizeFilename(l.runID)))
	if err := p.Save(10*vg.Inch, 5*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save population plot: %w", err)
	}
	return out, nil
}
