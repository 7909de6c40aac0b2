package main

import (
	"encoding/json"
	"fmt"
	"os"

	"cacscope/charts"
	"cacscope/internal/config"
	"cacscope/internal/engine"
	"cacscope/internal/testkit"
	"cacscope/report"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	// .env is optional; flags still win over environment defaults
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "cacscope",
		Short: "Quarterly CAC analysis: summary statistics, trend, target gap, report and chart artifacts",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSummaryCmd(),
		newTrendCmd(),
		newTargetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveInputs loads config and the fixture series, applying flag overrides.
func resolveInputs(target float64, outDir string) (*testkit.Kit, float64, string, error) {
	appConfig, err := config.Load()
	if err != nil {
		return nil, 0, "", err
	}

	kit, err := testkit.New()
	if err != nil {
		return nil, 0, "", err
	}

	if target == 0 {
		target = appConfig.Analysis.Target
	}
	if outDir == "" {
		outDir = appConfig.Analysis.OutputDir
	}
	return kit, target, outDir, nil
}

func newAnalyzeCmd() *cobra.Command {
	var target float64
	var outDir string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the full analysis and write report and chart artifacts",
		Long: `Run summary, trend and target-gap computations over the 2024 quarterly
CAC series and write the written report (Markdown + HTML) and the chart
workbooks (trend, gap, dashboard) to the output directory.

Example: cacscope analyze --target 150 --out artifacts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, tgt, dir, err := resolveInputs(target, outDir)
			if err != nil {
				return err
			}
			return runAnalyze(kit, tgt, dir)
		},
	}

	cmd.Flags().Float64Var(&target, "target", 0, "Target CAC override (default from TARGET_CAC)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory override (default from OUTPUT_DIR)")

	return cmd
}

func runAnalyze(kit *testkit.Kit, target float64, outDir string) error {
	eng := engine.New()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// The report and each chart workbook are independent artifacts;
	// write them in parallel and fail on the first engine error.
	var g errgroup.Group
	var reportPaths, chartPaths []string

	g.Go(func() error {
		doc, err := report.NewBuilder(eng).Build(kit.Series(), target)
		if err != nil {
			return err
		}
		reportPaths, err = report.NewWriter(outDir).Write(doc)
		return err
	})

	g.Go(func() error {
		var err error
		chartPaths, err = charts.NewRenderer(eng).WriteAll(outDir, kit.Series(), target)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println("Analysis complete. Generated files:")
	for _, p := range append(reportPaths, chartPaths...) {
		fmt.Printf("- %s\n", p)
	}
	return nil
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the summary statistics record as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, _, _, err := resolveInputs(0, "")
			if err != nil {
				return err
			}
			summary, err := engine.New().ComputeSummary(kit.Series())
			if err != nil {
				return err
			}
			return printJSON(summary)
		},
	}
}

func newTrendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Print the trend record as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, _, _, err := resolveInputs(0, "")
			if err != nil {
				return err
			}
			trend, err := engine.New().ComputeTrend(kit.Series())
			if err != nil {
				return err
			}
			return printJSON(trend)
		},
	}
}

func newTargetCmd() *cobra.Command {
	var target float64

	cmd := &cobra.Command{
		Use:   "target",
		Short: "Print the target comparison record as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			kit, tgt, _, err := resolveInputs(target, "")
			if err != nil {
				return err
			}
			comparison, err := engine.New().ComputeTargetComparison(kit.Series(), tgt)
			if err != nil {
				return err
			}
			return printJSON(comparison)
		},
	}

	cmd.Flags().Float64Var(&target, "target", 0, "Target CAC override (default from TARGET_CAC)")
	return cmd
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
