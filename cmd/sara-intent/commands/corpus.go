package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miguelAagelcruzvargas/sara-intent/cache"
	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the corpus hash used to key the embedding cache",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), cache.Hash(corpus.Default()))
		return err
	},
}

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List intent labels with their example counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		examples := corpus.Default()
		for _, label := range examples.Labels() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %d\n", label, len(examples[label]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(labelsCmd)
}
