package cli

import (
	"os/signal"
	"syscall"

	"codechat/internal/adapter/memstore"
	"codechat/internal/server"
	"codechat/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chatbot over HTTP",
	Long: `Start the HTTP API.

Routes:
  GET    /ping
  POST   /api/resolve                   {"text": "..."}
  POST   /api/sessions
  POST   /api/sessions/:id/messages     {"message": "..."}
  GET    /api/sessions/:id/transcript
  DELETE /api/sessions/:id`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := buildEngine(ctx, nil)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	gin.SetMode(cfg.Server.Mode)
	chat := usecase.NewChatService(engine.Resolver, memstore.NewMemoryStore())
	router := server.NewRouter(engine.Resolver, chat, logger)

	return server.Serve(ctx, addr, router, logger)
}
