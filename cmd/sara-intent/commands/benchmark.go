package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/miguelAagelcruzvargas/sara-intent/benchmark"
	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
)

var (
	datasetPath string
	datasetSize int
	reportDir   string
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Measure accuracy and latency over a labelled dataset",
	Long: `Classify a CSV dataset (columns text,intent with a header row) and
report accuracy per tier. Without --dataset the built-in corpus is used.

Examples:
  sara-intent benchmark --dataset transcripts.csv --out ./reports`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var cases []benchmark.Case
		if datasetPath != "" {
			var err error
			if cases, err = benchmark.LoadDatasetFile(datasetPath, datasetSize); err != nil {
				return err
			}
		} else {
			cases = benchmark.FromCorpus(corpus.Default())
		}

		c, release, err := buildClassifier(ctx, cfg, logger, nil, nil)
		if err != nil {
			return err
		}
		defer release()

		report, err := benchmark.Run(ctx, c, cases)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		m := report.Metrics
		fmt.Fprintf(out, "accuracy  %.1f%% (%d/%d)\n", 100*m.Accuracy, m.Correct, m.Total)
		fmt.Fprintf(out, "latency   p50 %v  p95 %v  max %v\n", m.LatencyP50, m.LatencyP95, m.LatencyMax)

		sources := make([]string, 0, len(m.BySource))
		for source := range m.BySource {
			sources = append(sources, source)
		}
		slices.Sort(sources)
		for _, source := range sources {
			s := m.BySource[source]
			fmt.Fprintf(out, "%-9s %d answered, %d correct\n", source, s.Total, s.Correct)
		}

		if verbose {
			for _, miss := range report.Misses() {
				fmt.Fprintf(out, "miss  %q expected %s got %s (%s)\n", miss.Text, miss.Expected, miss.Intent, miss.Source)
			}
		}

		if reportDir != "" {
			path, err := report.Save(reportDir)
			if err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
			fmt.Fprintf(out, "report    %s\n", path)
		}
		return nil
	},
}

func init() {
	benchmarkCmd.Flags().StringVar(&datasetPath, "dataset", "", "CSV dataset (default: built-in corpus)")
	benchmarkCmd.Flags().IntVar(&datasetSize, "limit", 0, "maximum number of rows to classify")
	benchmarkCmd.Flags().StringVar(&reportDir, "out", "", "directory for the JSON report")
	rootCmd.AddCommand(benchmarkCmd)
}
