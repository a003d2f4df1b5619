package report

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"quizmaster/internal/model"
)

// QuizzesPerSubject renders the admin bar chart (quiz count per subject) as PNG.
// At least one subject is required; callers guard the empty case.
func QuizzesPerSubject(w io.Writer, counts []model.NameCount) error {
	if len(counts) == 0 {
		return fmt.Errorf("render bar chart: no subjects")
	}
	bars := make([]chart.Value, 0, len(counts))
	maxCount := 1.0
	for _, nc := range counts {
		v := float64(nc.Count)
		if v > maxCount {
			maxCount = v
		}
		bars = append(bars, chart.Value{Label: nc.Name, Value: v})
	}
	graph := chart.BarChart{
		Title:    "Quizzes per subject",
		Width:    600,
		Height:   400,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			// Explicit range keeps all-zero data renderable.
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}

// AttemptsPerUser renders the admin pie chart (quiz attempts per user) as PNG.
// The total attempt count must be nonzero; callers guard the empty case.
func AttemptsPerUser(w io.Writer, counts []model.NameCount) error {
	values := make([]chart.Value, 0, len(counts))
	total := 0
	for _, nc := range counts {
		total += nc.Count
		if nc.Count > 0 {
			values = append(values, chart.Value{Label: nc.Name, Value: float64(nc.Count)})
		}
	}
	if total == 0 {
		return fmt.Errorf("render pie chart: no attempts")
	}
	graph := chart.PieChart{
		Title:  "Quiz attempts per user",
		Width:  600,
		Height: 400,
		Values: values,
	}
	return graph.Render(chart.PNG, w)
}
