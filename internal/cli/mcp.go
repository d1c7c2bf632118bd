package cli

import (
	"codechat/internal/mcp"

	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server on stdio",
	Long: `Expose the chatbot as the MCP tool "ask_programming_question".

Logs go to stderr (or the configured log file); stdout carries the protocol.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	engine, err := buildEngine(cmd.Context(), nil)
	if err != nil {
		return err
	}

	logger.Info().Msg("mcp server starting on stdio")
	return mcp.NewServer(engine.Resolver, Version).Run(cmd.Context())
}
