package cli

import (
	"fmt"
	"strings"

	"codechat/internal/usecase"

	"github.com/spf13/cobra"
)

var topicsSearch string

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List knowledge base topics",
	Long: `List the topics, languages and comparison kinds the chatbot knows about.

With --search, trigger phrases are fuzzy-ranked against the given text:
  codechat topics --search "loop"`,
	RunE: runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.Flags().StringVarP(&topicsSearch, "search", "s", "", "fuzzy-search trigger phrases")
}

func runTopics(cmd *cobra.Command, args []string) error {
	kb, err := usecase.LoadKnowledge(GetConfig(), GetRootDir())
	if err != nil {
		return err
	}

	if topicsSearch != "" {
		matches := kb.SearchPatterns(topicsSearch)
		if len(matches) == 0 {
			fmt.Printf("No trigger phrases match %q\n", topicsSearch)
			return nil
		}
		for _, m := range matches {
			fmt.Printf("%-18s %-36q score=%d\n", m.TopicID, m.Pattern, m.Score)
		}
		return nil
	}

	fmt.Printf("Topics (%d):\n", len(kb.Topics))
	for _, t := range kb.Topics {
		fmt.Printf("  %-18s %d patterns, %d responses\n", t.ID, len(t.Patterns), len(t.Responses))
	}

	langs := make([]string, len(kb.Languages))
	for i, l := range kb.Languages {
		langs[i] = l.ID
	}
	fmt.Printf("\nLanguages: %s\n", strings.Join(langs, ", "))

	fmt.Println("\nComparisons:")
	for _, c := range kb.Comparisons {
		fmt.Printf("  %-12s %d pairs, signals: %s\n", c.Kind, len(c.Pairs), strings.Join(c.Signals, ", "))
	}
	return nil
}
