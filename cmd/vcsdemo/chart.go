package main

import (
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"lattice-vcs/vcs"
)

// renderSizeChart writes a bar chart comparing commitment, public-parameter,
// and secret byte sizes to an HTML file, grounded on
// Additionnals/plot_pacs_sweep.go's chart-building pattern (Title/Legend via
// SetGlobalOptions, data added via opts.BarData).
func renderSizeChart(sizes vcs.SizeReport, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Vector commitment byte sizes",
			Subtitle: "commitment / public parameters / secret",
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "bytes"}),
	)

	bar.SetXAxis([]string{"commitment", "public params", "secret"}).
		AddSeries("bytes", []opts.BarData{
			{Value: sizes.CommitmentBytes},
			{Value: sizes.PublicParamBytes},
			{Value: sizes.SecretBytes},
		})

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return bar.Render(f)
}
