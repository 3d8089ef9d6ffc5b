package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/realitycheck/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fact-check endpoint and web page",
	Long: `Serve starts the HTTP endpoint that fact-checks text with the configured
completion provider, plus a minimal web page at /.

Endpoints:
  POST /fact-check              {"text": "..."} -> analysis result
  POST /functions/v1/fact-check alias
  POST /api/v1/fact-check       alias
  GET  /health                  liveness
  GET  /health/upstream         completion provider reachability

Example:
  export LOVABLE_API_KEY=...
  realitycheck serve --port 8080
  realitycheck serve --provider ollama --model llama3.1`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "", "listen host (default from config: 0.0.0.0)")
	serveCmd.Flags().Int("port", 0, "listen port (default from config: 8080)")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := newLogger()

	if cfg.LLM.APIKey == "" && cfg.LLM.Provider != "ollama" {
		logger.Warn("no API key configured, completion requests will fail upstream")
	}

	checker, err := newChecker(cfg, logger)
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, checker, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "✓ Listening on http://%s (provider: %s, model: %s)\n", srv.Addr(), checker.ProviderName(), cfg.LLM.Model)

	return srv.Run(ctx)
}
