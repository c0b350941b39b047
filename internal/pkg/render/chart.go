// Package render projects finished views onto charts and workbooks. It never
// aggregates: every number it draws or writes comes from a view record.
package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ougirez/yhdash/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	chartWidth  = 12 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// IsTrend reports whether the view is keyed by year and reads as a line chart.
func IsTrend(v *domain.View) bool {
	for _, f := range v.Fields {
		if f == domain.FieldYear {
			return true
		}
	}
	return false
}

// Label joins the record's display keys, skipping the year and region codes.
func Label(s domain.AggregatedStat, fields []domain.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == domain.FieldYear || f == domain.FieldRegionCode {
			continue
		}
		parts = append(parts, s.Key(f))
	}
	return strings.Join(parts, " / ")
}

// Chart draws v as PNG: a bar per record, or a line per series for trends.
func Chart(v *domain.View, w io.Writer) error {
	p := plot.New()
	p.Title.Text = title(v)
	p.Y.Label.Text = string(v.Measure)

	var err error
	if IsTrend(v) {
		err = addLines(p, v)
	} else {
		err = addBars(p, v)
	}
	if err != nil {
		return fmt.Errorf("render view-%s: %w", v.Name, err)
	}

	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("plot.WriterTo: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func title(v *domain.View) string {
	t := strings.ReplaceAll(v.Name, "_", " ")
	if len(v.Records) > 0 && v.Records[0].Year != 0 && !IsTrend(v) {
		t = fmt.Sprintf("%s %d", t, v.Records[0].Year)
	}
	return t
}

func addBars(p *plot.Plot, v *domain.View) error {
	if len(v.Records) == 0 {
		return nil
	}

	values := make(plotter.Values, len(v.Records))
	labels := make([]string, len(v.Records))
	for i, r := range v.Records {
		values[i] = r.Value
		labels[i] = Label(r, v.Fields)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return fmt.Errorf("plotter.NewBarChart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars, plotter.NewGrid())
	p.NominalX(labels...)
	return nil
}

func addLines(p *plot.Plot, v *domain.View) error {
	series := make(map[string]plotter.XYs)
	for _, r := range v.Records {
		name := Label(r, v.Fields)
		series[name] = append(series[name], plotter.XY{X: float64(r.Year), Y: r.Value})
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	p.X.Label.Text = string(domain.FieldYear)
	p.Add(plotter.NewGrid())
	for i, name := range names {
		pts := series[name]
		sort.Slice(pts, func(a, b int) bool { return pts[a].X < pts[b].X })

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plotter.NewLine, series-%s: %w", name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(name, line)
	}
	return nil
}
