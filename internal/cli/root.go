package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/realitycheck/internal/factcheck"
	"github.com/ppiankov/realitycheck/internal/llm"
	"github.com/ppiankov/realitycheck/internal/model"
)

// Version is set at build time
var Version = "0.1.0"

// ErrReported is returned when the failure was already shown to the user
var ErrReported = errors.New("analysis failed")

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "realitycheck",
	Short: "Reality Check - AI-powered fact checker",
	Long: `Reality Check extracts the factual claims from a piece of text and asks a
language model to fact-check each of them.

Every claim gets a verdict (TRUE, FALSE or UNCERTAIN), a confidence score,
an explanation and the sources the verdict relies on. The text as a whole
gets an overall verdict, which may also be MIXED.

Verdicts are model output, not ground truth. Check the sources.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of Reality Check.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "realitycheck v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.realitycheck/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Completion provider flags, shared by serve and check --local
	rootCmd.PersistentFlags().String("provider", "", "completion provider (openai, anthropic, ollama)")
	rootCmd.PersistentFlags().String("model", "", "model identifier")
	rootCmd.PersistentFlags().String("base-url", "", "completion API base URL")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("llm.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("llm.base_url", rootCmd.PersistentFlags().Lookup("base-url"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, config file and ENV variables
func initConfig() {
	// A missing .env is the normal case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
	}

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".realitycheck"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(model.DefaultConfig())

	// Read in environment variables that match REALITYCHECK_*, e.g. REALITYCHECK_LLM_MODEL
	viper.SetEnvPrefix("REALITYCHECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so env overrides reach Unmarshal
func setDefaults(d *model.Config) {
	viper.SetDefault("server.host", d.Server.Host)
	viper.SetDefault("server.port", d.Server.Port)
	viper.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	viper.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	viper.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	viper.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)

	viper.SetDefault("llm.provider", d.LLM.Provider)
	viper.SetDefault("llm.model", d.LLM.Model)
	viper.SetDefault("llm.api_key", d.LLM.APIKey)
	viper.SetDefault("llm.base_url", d.LLM.BaseURL)
	viper.SetDefault("llm.temperature", d.LLM.Temperature)
	viper.SetDefault("llm.timeout", d.LLM.Timeout)
	viper.SetDefault("llm.max_tokens", d.LLM.MaxTokens)

	viper.SetDefault("client.endpoint", d.Client.Endpoint)
	viper.SetDefault("client.timeout", d.Client.Timeout)
	viper.SetDefault("client.min_text_length", d.Client.MinTextLength)

	viper.SetDefault("fetch.timeout", d.Fetch.Timeout)
	viper.SetDefault("fetch.user_agent", d.Fetch.UserAgent)
	viper.SetDefault("fetch.max_body_bytes", d.Fetch.MaxBodyBytes)
	viper.SetDefault("fetch.respect_robots", d.Fetch.RespectRobots)
	viper.SetDefault("fetch.http_proxy", d.Fetch.HTTPProxy)
	viper.SetDefault("fetch.https_proxy", d.Fetch.HTTPSProxy)
}

// loadConfig returns the effective configuration. The API key is resolved
// once here and injected into the provider.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = apiKeyFromEnv(cfg.LLM.Provider)
	}

	if strings.EqualFold(cfg.LLM.Provider, "ollama") {
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return cfg, nil
}

// apiKeyFromEnv looks up the provider's conventional key variable
func apiKeyFromEnv(provider string) string {
	var names []string
	switch strings.ToLower(provider) {
	case "anthropic", "claude":
		names = []string{"ANTHROPIC_API_KEY"}
	case "ollama":
		return ""
	default:
		names = []string{"LOVABLE_API_KEY", "OPENAI_API_KEY"}
	}

	for _, name := range names {
		if key := os.Getenv(name); key != "" {
			return key
		}
	}
	return ""
}

// newLogger returns the process logger writing to stderr
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newChecker wires the configured provider into a fact checker
func newChecker(cfg *model.Config, logger *slog.Logger) (*factcheck.Checker, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return factcheck.NewChecker(provider, cfg.LLM, logger), nil
}
