package census

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderChart writes a self-contained HTML page charting population over
// generations for this run using go-echarts.
func (l *Ledger) RenderChart(w io.Writer) error {
	samples := l.Snapshot()

	xs := make([]int, 0, len(samples))
	data := make([]opts.LineData, 0, len(samples))
	for _, s := range samples {
		xs = append(xs, s.Generation)
		data = append(data, opts.LineData{Value: s.Population})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Population Census", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Population by Generation", Subtitle: fmt.Sprintf("run=%s samples=%d", l.RunID(), len(samples))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Generation", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Population", NameLocation: "middle", NameGap: 30}),
	)
	line.SetXAxis(xs).AddSeries("population", data)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render census chart: %w", err)
	}
	return nil
}
