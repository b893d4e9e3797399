// Package main is the sara-intent CLI.
//
// Usage:
//
//	sara-intent [flags] <command> [args]
//
// Commands:
//
//	classify        - Classify utterances from arguments or stdin
//	warm            - Build or refresh the embedding cache
//	hash            - Print the corpus hash
//	labels          - List the intent labels
//	serve-metrics   - Classify stdin while exposing Prometheus metrics
package main

import (
	"fmt"
	"os"

	"github.com/miguelAagelcruzvargas/sara-intent/cmd/sara-intent/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
