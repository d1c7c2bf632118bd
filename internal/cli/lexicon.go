package cli

import (
	"fmt"
	"os"

	"codechat/config"
	"codechat/internal/adapter/lexicon"

	"github.com/spf13/cobra"
)

var lexiconForce bool

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Manage the lemmatizer dictionary",
}

var lexiconFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and store the lemmatizer dictionary",
	Long: `Fetch lemmas.txt and exceptions.txt from the configured source and store them
in the data directory. Commands fetch automatically when the data is missing;
use --force to refresh it.`,
	RunE: runLexiconFetch,
}

func init() {
	rootCmd.AddCommand(lexiconCmd)
	lexiconCmd.AddCommand(lexiconFetchCmd)
	lexiconFetchCmd.Flags().BoolVar(&lexiconForce, "force", false, "re-fetch even when the stored dictionary is current")
}

func runLexiconFetch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	dataDir := cfg.DataDir(GetRootDir())

	res, err := lexicon.Provision(cmd.Context(), lexicon.Options{
		Source:   cfg.Lexicon.Source,
		DataDir:  dataDir,
		Force:    lexiconForce,
		Timeout:  cfg.Lexicon.Timeout,
		Progress: os.Stderr,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	lemmas, exceptions := res.Lexicon.Size()
	if res.Fetched {
		fmt.Printf("Fetched lexicon from %s (%s)\n", cfg.Lexicon.Source, res.Reason)
	} else {
		fmt.Println("Lexicon is up to date")
	}
	fmt.Printf("  Lemmas:     %d\n", lemmas)
	fmt.Printf("  Exceptions: %d\n", exceptions)
	if dataDir != "" {
		fmt.Printf("  Stored in:  %s\n", config.LexiconDBPath(dataDir))
	}
	return nil
}
