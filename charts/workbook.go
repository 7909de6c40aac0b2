package charts

import (
	"fmt"
	"path/filepath"

	"cacscope/domain/metrics"
	"cacscope/domain/series"
	"cacscope/internal"
	"cacscope/internal/engine"
	"cacscope/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Sheet and artifact names shared by all workbooks.
const (
	dataSheet      = "Data"
	chartSheet     = "Chart"
	dashboardSheet = "Dashboard"
	metricsSheet   = "Metrics"

	TrendFile     = "cac_trend_analysis.xlsx"
	GapFile       = "cac_gap_analysis.xlsx"
	DashboardFile = "cac_performance_dashboard.xlsx"
)

// Renderer emits self-contained chart workbooks for one observation
// series: a trend line chart, a gap bar chart and a multi-metric
// dashboard. Each workbook embeds its own data sheet.
type Renderer struct {
	engine *engine.Engine
	log    *internal.Logger
}

// NewRenderer creates a chart renderer around an engine
func NewRenderer(e *engine.Engine) *Renderer {
	return &Renderer{
		engine: e,
		log:    internal.DefaultLogger,
	}
}

// TrendWorkbook builds the trend line chart: actual CAC per quarter plus
// flat target and yearly-average reference series.
func (r *Renderer) TrendWorkbook(s series.Series, target float64) (*excelize.File, error) {
	summary, err := r.engine.ComputeSummary(s)
	if err != nil {
		return nil, err
	}
	comparison, err := r.engine.ComputeTargetComparison(s, target)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := r.writeDataSheet(f, s, summary, comparison); err != nil {
		f.Close()
		return nil, err
	}

	n := s.Len()
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{Name: "Actual CAC", Categories: seriesRange(n, "A"), Values: seriesRange(n, "B")},
			{Name: fmt.Sprintf("Industry Target ($%.0f)", target), Categories: seriesRange(n, "A"), Values: seriesRange(n, "C")},
			{Name: fmt.Sprintf("2024 Average ($%.2f)", summary.Mean), Categories: seriesRange(n, "A"), Values: seriesRange(n, "D")},
		},
		Title:     []excelize.RichTextRun{{Text: "Customer Acquisition Cost (CAC) Trend Analysis - 2024"}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 640, Height: 400},
	}
	if err := r.addChartSheet(f, chart); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// GapWorkbook builds the bar chart of per-quarter gap to target.
func (r *Renderer) GapWorkbook(s series.Series, target float64) (*excelize.File, error) {
	summary, err := r.engine.ComputeSummary(s)
	if err != nil {
		return nil, err
	}
	comparison, err := r.engine.ComputeTargetComparison(s, target)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := r.writeDataSheet(f, s, summary, comparison); err != nil {
		f.Close()
		return nil, err
	}

	n := s.Len()
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{Name: "Gap to Target ($)", Categories: seriesRange(n, "A"), Values: seriesRange(n, "E")},
		},
		Title:     []excelize.RichTextRun{{Text: fmt.Sprintf("CAC Gap Analysis: Difference from Industry Target ($%.0f)", target)}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		Dimension: excelize.ChartDimension{Width: 640, Height: 360},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
	}
	if err := r.addChartSheet(f, chart); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// DashboardWorkbook builds the multi-metric dashboard: trend, gap and
// %-above-target charts plus a key-metrics sheet.
func (r *Renderer) DashboardWorkbook(s series.Series, target float64) (*excelize.File, error) {
	summary, err := r.engine.ComputeSummary(s)
	if err != nil {
		return nil, err
	}
	trend, err := r.engine.ComputeTrend(s)
	if err != nil {
		return nil, err
	}
	comparison, err := r.engine.ComputeTargetComparison(s, target)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := r.writeDataSheet(f, s, summary, comparison); err != nil {
		f.Close()
		return nil, err
	}
	if err := r.writeMetricsSheet(f, s, summary, trend, comparison); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(dashboardSheet); err != nil {
		f.Close()
		return nil, errors.RenderError("failed to create dashboard sheet", err)
	}

	n := s.Len()
	panels := []struct {
		cell  string
		chart *excelize.Chart
	}{
		{"A1", &excelize.Chart{
			Type: excelize.Line,
			Series: []excelize.ChartSeries{
				{Name: "CAC", Categories: seriesRange(n, "A"), Values: seriesRange(n, "B")},
				{Name: "Target", Categories: seriesRange(n, "A"), Values: seriesRange(n, "C")},
			},
			Title:     []excelize.RichTextRun{{Text: "Quarterly CAC Trend"}},
			Legend:    excelize.ChartLegend{Position: "bottom"},
			Dimension: excelize.ChartDimension{Width: 480, Height: 300},
		}},
		{"J1", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{
				{Name: "Gap", Categories: seriesRange(n, "A"), Values: seriesRange(n, "E")},
			},
			Title:     []excelize.RichTextRun{{Text: "Gap to Target"}},
			Dimension: excelize.ChartDimension{Width: 480, Height: 300},
		}},
		{"A17", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{
				{Name: "% Above Target", Categories: seriesRange(n, "A"), Values: seriesRange(n, "F")},
			},
			Title:     []excelize.RichTextRun{{Text: "Percentage Above Target"}},
			Dimension: excelize.ChartDimension{Width: 480, Height: 300},
		}},
	}
	for _, p := range panels {
		if err := f.AddChart(dashboardSheet, p.cell, p.chart); err != nil {
			f.Close()
			return nil, errors.RenderError("failed to add dashboard chart", err)
		}
	}

	idx, err := f.GetSheetIndex(dashboardSheet)
	if err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

// WriteAll renders all three workbooks into dir and returns the paths.
func (r *Renderer) WriteAll(dir string, s series.Series, target float64) ([]string, error) {
	builds := []struct {
		name  string
		build func(series.Series, float64) (*excelize.File, error)
	}{
		{TrendFile, r.TrendWorkbook},
		{GapFile, r.GapWorkbook},
		{DashboardFile, r.DashboardWorkbook},
	}

	paths := make([]string, 0, len(builds))
	for _, b := range builds {
		f, err := b.build(s, target)
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, b.name)
		saveErr := f.SaveAs(path)
		f.Close()
		if saveErr != nil {
			return nil, errors.RenderError(fmt.Sprintf("failed to save %s", b.name), saveErr)
		}
		r.log.Info("chart artifact written: %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// writeDataSheet lays out the shared data columns:
// A quarter, B CAC, C target, D average, E gap, F % above target.
func (r *Renderer) writeDataSheet(f *excelize.File, s series.Series, summary metrics.Summary, comparison metrics.TargetComparison) error {
	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return errors.RenderError("failed to rename data sheet", err)
	}

	header := []interface{}{"Quarter", "CAC", "Target", "Average", "Gap_to_Target", "Pct_Above_Target"}
	if err := f.SetSheetRow(dataSheet, "A1", &header); err != nil {
		return errors.RenderError("failed to write data header", err)
	}

	for i, p := range comparison.Periods {
		row := []interface{}{p.Period, p.Value, comparison.Target, summary.Mean, p.Gap, p.PctAboveTarget}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(dataSheet, cell, &row); err != nil {
			return errors.RenderError("failed to write data row", err)
		}
	}
	return nil
}

func (r *Renderer) writeMetricsSheet(f *excelize.File, s series.Series, summary metrics.Summary, trend metrics.Trend, comparison metrics.TargetComparison) error {
	if _, err := f.NewSheet(metricsSheet); err != nil {
		return errors.RenderError("failed to create metrics sheet", err)
	}

	last, _ := s.Last()
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Average CAC", fmt.Sprintf("$%.2f", summary.Mean)},
		{"Median CAC", fmt.Sprintf("$%.2f", summary.Median)},
		{"Standard Deviation", fmt.Sprintf("$%.2f", summary.StdDev)},
		{"Coefficient of Variation", fmt.Sprintf("%.2f%%", summary.CoefficientOfVariation)},
		{"Target CAC", fmt.Sprintf("$%.2f", comparison.Target)},
		{"Gap", fmt.Sprintf("$%.2f", comparison.MeanGap)},
		{"% Above Target", fmt.Sprintf("%.1f%%", comparison.MeanPctAboveTarget)},
		{"Overall Direction", string(trend.OverallDirection)},
		{fmt.Sprintf("%s CAC", last.Period), fmt.Sprintf("$%.2f", last.Value)},
	}
	for i, row := range rows {
		row := row
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(metricsSheet, cell, &row); err != nil {
			return errors.RenderError("failed to write metrics row", err)
		}
	}
	return nil
}

func (r *Renderer) addChartSheet(f *excelize.File, chart *excelize.Chart) error {
	idx, err := f.NewSheet(chartSheet)
	if err != nil {
		return errors.RenderError("failed to create chart sheet", err)
	}
	if err := f.AddChart(chartSheet, "A1", chart); err != nil {
		return errors.RenderError("failed to add chart", err)
	}
	f.SetActiveSheet(idx)
	return nil
}

// seriesRange builds an absolute data range for column col covering n rows.
func seriesRange(n int, col string) string {
	return fmt.Sprintf("%s!$%s$2:$%s$%d", dataSheet, col, col, n+1)
}
