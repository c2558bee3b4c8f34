package nordpool

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PriceChartHTML renders one day's prices as an HTML bar chart.
func PriceChartHTML(col DateColumn) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: col.Date.Format("2006-01-02")}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Hour"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Price (EUR/MWh)"}),
	)

	var xAxis []string
	var yAxis []opts.BarData
	for _, cell := range col.Cells {
		xAxis = append(xAxis, fmt.Sprintf("%02d", cell.MarketHour))
		yAxis = append(yAxis, opts.BarData{Value: cell.Price.Value.InexactFloat64()})
	}
	bar.SetXAxis(xAxis).AddSeries("spot", yAxis)

	var buf bytes.Buffer
	if err := bar.Render(&buf); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return buf.String(), nil
}
