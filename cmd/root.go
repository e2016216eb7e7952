package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hub01/hub01-go/config"
	"github.com/hub01/hub01-go/hub01"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *hub01.Client

	// Persistent flags
	baseURL  string
	username string
	token    string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hub01",
	Short: "A CLI for the Hub01 Shop marketplace API",
	Long: `hub01 talks to a Hub01 Shop marketplace server: browse project types,
tags, projects and their versions, and exercise the full API end-to-end
with the check command.

Credentials come from flags, a hub01.yaml config file, HUB01_* environment
variables, or ./username and ./api_key files in the working directory.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion stores build metadata for the version template and user agent.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./hub01.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "API base URL (default is "+config.DefaultBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&username, "username", "", "username for authenticated operations")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "API token for authenticated operations")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace/debug/info/warn/error)")
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override config file and environment
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if username != "" {
		cfg.Username = username
	}
	if token != "" {
		cfg.Token = token
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	logger = setupLogger(cfg.Logging)

	opts := []hub01.Option{
		hub01.WithLogger(logger),
		hub01.WithUserAgent("hub01-go/" + version),
	}
	if cfg.Token != "" {
		opts = append(opts, hub01.WithToken(cfg.Token))
	}

	client, err = hub01.NewClient(cfg.BaseURL, opts...)
	if err != nil {
		return fmt.Errorf("failed to create Hub01 client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when enabled and stderr is a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
