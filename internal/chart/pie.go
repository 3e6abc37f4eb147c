// Package chart renders category summaries as embeddable images.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"finlog/internal/core"
)

// ErrNoData is returned when no category has a positive total to plot.
var ErrNoData = errors.New("no positive category totals to chart")

// RenderPie writes a PNG pie chart of the per-category totals to w, one slice
// per category with a positive total, labeled with the category name and its
// percentage of the positive whole. Pie slices cannot represent zero or
// negative values, so non-positive categories (e.g. income entered as
// negative amounts) are excluded rather than mis-rendered.
func RenderPie(w io.Writer, byCategory []core.CategoryAmount) error {
	var positive int64
	for _, ca := range byCategory {
		if ca.Amount.Cents > 0 {
			positive += ca.Amount.Cents
		}
	}
	if positive == 0 {
		return ErrNoData
	}

	values := make([]chart.Value, 0, len(byCategory))
	for _, ca := range byCategory {
		if ca.Amount.Cents <= 0 {
			continue
		}
		percent := (ca.Amount.Cents*100 + positive/2) / positive
		values = append(values, chart.Value{
			Value: float64(ca.Amount.Cents),
			Label: fmt.Sprintf("%s (%d%%)", ca.Name, percent),
		})
	}

	pie := chart.PieChart{
		Width:  512,
		Height: 512,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}
