package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	classifier "github.com/miguelAagelcruzvargas/sara-intent"
	"github.com/miguelAagelcruzvargas/sara-intent/params"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [utterance...]",
	Short: "Classify utterances",
	Long: `Classify each argument, or each line of stdin when no arguments are
given, and print one JSON object per utterance.

Examples:
  sara-intent classify "pon una alarma en 10 minutos"
  sara-intent classify < transcripts.txt`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

// output is the JSON line printed for each utterance.
type output struct {
	Text       string        `json:"text"`
	Intent     string        `json:"intent"`
	Params     params.Params `json:"params"`
	Source     string        `json:"source"`
	Confidence float32       `json:"confidence"`
	LatencyMS  float64       `json:"latency_ms"`
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, release, err := buildClassifier(ctx, cfg, logger, nil, nil)
	if err != nil {
		return err
	}
	defer release()

	return classifyAll(ctx, c, args, cmd.InOrStdin(), cmd.OutOrStdout())
}

// classifyAll classifies args, or the non-blank lines of in when args is
// empty, writing JSON lines to out.
func classifyAll(ctx context.Context, c *classifier.Classifier, args []string, in io.Reader, out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)

	emit := func(text string) error {
		res, err := c.Classify(ctx, text)
		if err != nil {
			return err
		}
		intent, p, source := res.Tuple()
		return enc.Encode(output{
			Text:       text,
			Intent:     intent,
			Params:     p,
			Source:     source,
			Confidence: res.Confidence,
			LatencyMS:  float64(res.Latency.Microseconds()) / 1000,
		})
	}

	if len(args) > 0 {
		for _, text := range args {
			if err := emit(text); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if err := emit(text); err != nil {
			return err
		}
	}
	return scanner.Err()
}
