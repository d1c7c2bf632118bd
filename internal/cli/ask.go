package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	askText    string
	askExplain bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer a single question",
	Long: `Resolve one question and print the answer.

Examples:
  codechat ask -q "python for loop"
  codechat ask -q "difference between python and java"
  codechat ask -q "what are data structures" --explain`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVarP(&askText, "query", "q", "", "question to answer (required)")
	askCmd.Flags().BoolVar(&askExplain, "explain", false, "print the resolution with its source and confidence as JSON")
	askCmd.MarkFlagRequired("query")
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}

	if !askExplain {
		fmt.Println(engine.Resolver.Resolve(askText))
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(engine.Resolver.Explain(askText))
}
