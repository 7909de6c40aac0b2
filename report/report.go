package report

import (
	"fmt"
	"strings"
	"time"

	"cacscope/domain/metrics"
	"cacscope/domain/series"
	"cacscope/internal/engine"

	"github.com/google/uuid"
)

// Builder renders engine output as a written analysis document. It does no
// computation of its own beyond string templating; engine errors propagate
// unchanged and no metric is ever replaced with a default.
type Builder struct {
	engine *engine.Engine
}

// NewBuilder creates a report builder around an engine
func NewBuilder(e *engine.Engine) *Builder {
	return &Builder{engine: e}
}

// Document is a rendered report plus its run metadata.
type Document struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Markdown    string    `json:"markdown"`
}

// Build computes all three records for the series and assembles the
// Markdown report.
func (b *Builder) Build(s series.Series, target float64) (*Document, error) {
	summary, err := b.engine.ComputeSummary(s)
	if err != nil {
		return nil, err
	}
	trend, err := b.engine.ComputeTrend(s)
	if err != nil {
		return nil, err
	}
	comparison, err := b.engine.ComputeTargetComparison(s, target)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	var md strings.Builder
	md.WriteString("# Customer Acquisition Cost Analysis - 2024\n\n")
	fmt.Fprintf(&md, "Run `%s`, generated %s\n\n", doc.RunID, doc.GeneratedAt.Format(time.RFC3339))

	writeQuarterlyTable(&md, comparison)
	writeStatisticsTable(&md, summary, comparison)
	writeTrendSection(&md, trend, s)
	writeFindings(&md, summary, trend, comparison, s)
	writeRecommendations(&md, comparison)

	doc.Markdown = md.String()
	return doc, nil
}

func writeQuarterlyTable(md *strings.Builder, comparison metrics.TargetComparison) {
	md.WriteString("## Quarterly Performance\n\n")
	md.WriteString("| Quarter | CAC | Gap to Target | % Above Target |\n")
	md.WriteString("|---|---|---|---|\n")
	for _, p := range comparison.Periods {
		fmt.Fprintf(md, "| %s | $%.2f | $%.2f | %.2f%% |\n", p.Period, p.Value, p.Gap, p.PctAboveTarget)
	}
	md.WriteString("\n")
}

func writeStatisticsTable(md *strings.Builder, summary metrics.Summary, comparison metrics.TargetComparison) {
	md.WriteString("## Statistical Analysis\n\n")
	md.WriteString("| Metric | Value |\n")
	md.WriteString("|---|---|\n")
	fmt.Fprintf(md, "| Mean CAC | $%.2f |\n", summary.Mean)
	fmt.Fprintf(md, "| Median CAC | $%.2f |\n", summary.Median)
	fmt.Fprintf(md, "| Standard Deviation | $%.2f |\n", summary.StdDev)
	fmt.Fprintf(md, "| Coefficient of Variation | %.2f%% |\n", summary.CoefficientOfVariation)
	fmt.Fprintf(md, "| Min CAC | $%.2f |\n", summary.Min)
	fmt.Fprintf(md, "| Max CAC | $%.2f |\n", summary.Max)
	fmt.Fprintf(md, "| Range | $%.2f |\n", summary.Range)
	fmt.Fprintf(md, "| Target CAC | $%.2f |\n", comparison.Target)
	fmt.Fprintf(md, "| Gap from Target (mean) | $%.2f |\n", comparison.MeanGap)
	fmt.Fprintf(md, "| Above Target (mean) | %.1f%% |\n", comparison.MeanPctAboveTarget)
	md.WriteString("\n")
}

func writeTrendSection(md *strings.Builder, trend metrics.Trend, s series.Series) {
	md.WriteString("## Trend\n\n")
	fmt.Fprintf(md, "Overall direction: **%s**.\n\n", trend.OverallDirection)
	for _, step := range trend.Steps {
		fmt.Fprintf(md, "- %s to %s: %+.2f%%\n", step.FromPeriod, step.ToPeriod, step.GrowthPct)
	}
	if len(trend.Pace) > 0 {
		md.WriteString("\nGrowth pace:\n\n")
		for _, p := range trend.Pace {
			fmt.Fprintf(md, "- into %s: %s (%+.2f pp)\n", p.Period, p.Label, p.DeltaPct)
		}
	}
	md.WriteString("\n")
}

func writeFindings(md *strings.Builder, summary metrics.Summary, trend metrics.Trend, comparison metrics.TargetComparison, s series.Series) {
	md.WriteString("## Key Findings\n\n")

	first, _ := s.First()
	last, _ := s.Last()

	fmt.Fprintf(md, "1. Average CAC of $%.2f is $%.2f above the industry target of $%.2f.\n",
		summary.Mean, comparison.MeanGap, comparison.Target)
	fmt.Fprintf(md, "2. CAC is %s across the year, from $%.2f in %s to $%.2f in %s.\n",
		trend.OverallDirection, first.Value, first.Period, last.Value, last.Period)
	fmt.Fprintf(md, "3. The company is paying a %.1f%% premium over the industry benchmark.\n",
		comparison.MeanPctAboveTarget)
	fmt.Fprintf(md, "4. Quarterly variation is low (coefficient of variation %.2f%%): the elevated cost is structural, not noise.\n",
		summary.CoefficientOfVariation)
	md.WriteString("\n")
}

func writeRecommendations(md *strings.Builder, comparison metrics.TargetComparison) {
	md.WriteString("## Strategic Recommendations\n\n")
	recommendations := []string{
		"Implement data-driven attribution modeling to identify the highest-ROI marketing channels.",
		"Optimize digital marketing spend allocation based on channel-specific CAC performance.",
		"Deploy marketing automation and personalization to improve conversion rates.",
		"Conduct a comprehensive audit of underperforming marketing channels.",
		"Establish real-time CAC monitoring with automated alerts.",
		"Develop a customer segmentation strategy for high-value, low-cost acquisition.",
		"Launch an A/B testing framework for continuous campaign optimization.",
		"Negotiate better rates with marketing partners based on volume commitments.",
	}
	for i, rec := range recommendations {
		fmt.Fprintf(md, "%d. %s\n", i+1, rec)
	}
	fmt.Fprintf(md, "\nPriority: reallocate budget to the highest-performing channels and close the $%.2f-per-customer gap to the $%.2f benchmark.\n",
		comparison.MeanGap, comparison.Target)
}
