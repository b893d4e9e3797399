package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	classifier "github.com/miguelAagelcruzvargas/sara-intent"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Build or refresh the embedding cache",
	Long: `Start the classifier once so the corpus is embedded and saved to the
configured cache. Later runs with an unchanged corpus and model read the
cache instead of embedding again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, release, err := buildClassifier(cmd.Context(), cfg, logger, nil, printProgress(cmd.ErrOrStderr()))
		if err != nil {
			return err
		}
		defer release()

		stats := c.Stats()
		if !stats.SemanticEnabled {
			return fmt.Errorf("semantic tier unavailable for provider %q, see logs", cfg.Embedding.Provider)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "corpus %s: %d examples indexed\n", c.CorpusHash(), stats.IndexSize)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(warmCmd)
}

func printProgress(w io.Writer) classifier.ProgressFunc {
	return func(percent int, status, detail string) {
		if detail != "" {
			fmt.Fprintf(w, "[%3d%%] %s: %s\n", percent, status, detail)
			return
		}
		fmt.Fprintf(w, "[%3d%%] %s\n", percent, status)
	}
}
