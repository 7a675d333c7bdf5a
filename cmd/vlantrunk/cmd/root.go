package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yaroslav/vlantrunk/internal/config"
	"github.com/yaroslav/vlantrunk/internal/logging"
	"github.com/yaroslav/vlantrunk/internal/metrics"
	"github.com/yaroslav/vlantrunk/internal/trunk"
	"github.com/yaroslav/vlantrunk/sdk"
)

var (
	// Version information (set at build time via ldflags)
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Global flags.
var (
	configPath      string
	username        string
	apiKey          string
	endpoint        string
	timeout         time.Duration
	logLevel        string
	devMode         bool
	metricsTextfile string
	jsonOutput      bool
)

// invocation is the per-run state shared by the subcommands.
type invocation struct {
	id     string
	logger *zap.Logger
}

var current *invocation

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vlantrunk",
	Short: "vlantrunk - VLAN trunk management for bare-metal servers",
	Long: `vlantrunk reads and changes the VLAN trunks on the switch ports of
bare-metal servers through the provider's REST API.

Interfaces are named by one of:
  - IP address                   10.0.0.1
  - FQDN and interface name      machine-01.example.com,eth1
  - FQDN and native VLAN name    machine-01.example.com,backend

Credentials come from the config file, SL_USERNAME / SL_API_KEY,
or --username / --api-key.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupInvocation,
}

// Execute runs the root command. Metrics and logs are flushed whether or
// not the command succeeded.
func Execute() error {
	cmd, err := rootCmd.ExecuteC()
	finishInvocation(cmd, err)
	return err
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML or TOML config file")
	flags.StringVar(&username, "username", "", "API username (overrides "+config.EnvUsername+")")
	flags.StringVar(&apiKey, "api-key", "", "API key (overrides "+config.EnvAPIKey+")")
	flags.StringVar(&endpoint, "endpoint", "", "REST API endpoint (default "+sdk.DefaultEndpoint+")")
	flags.DurationVar(&timeout, "timeout", 0, "Timeout for the whole command (default 60s)")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flags.BoolVar(&devMode, "dev", false, "Enable development mode (console debug logging instead of JSON)")
	flags.StringVar(&metricsTextfile, "metrics-textfile", "", "Write Prometheus metrics to this file on exit")
	flags.BoolVar(&jsonOutput, "json", false, "Print results as JSON instead of a table")
}

// setupInvocation builds the logger and stores it in the command context.
func setupInvocation(cmd *cobra.Command, args []string) error {
	level := logLevel
	if devMode && !cmd.Flags().Changed("log-level") {
		level = ""
	}

	logger, err := initLogger(devMode, level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := metrics.Init(); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	id := uuid.NewString()
	logger = logger.With(
		zap.String(logging.FieldInvocationID, id),
		zap.String(logging.FieldCommand, cmd.Name()),
	)
	current = &invocation{id: id, logger: logger}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.WithLogger(ctx, logger))
	return nil
}

// finishInvocation records the run, writes the metrics textfile if asked
// and flushes the logger.
func finishInvocation(cmd *cobra.Command, err error) {
	if current == nil {
		return
	}
	defer func() { current = nil }()

	logger := current.logger
	defer logger.Sync() //nolint:errcheck

	if cmd != nil {
		metrics.MarkRun(cmd.Name(), err, time.Now())
	}

	if err != nil {
		logger.Error("command failed", zap.Error(err), zap.Bool("resolution_error", trunk.IsResolutionError(err)))
	}

	if metricsTextfile != "" {
		if werr := metrics.WriteTextfile(metricsTextfile); werr != nil {
			logger.Warn("failed to write metrics textfile", zap.Error(werr))
		}
	}
}

// initLogger builds the CLI logger. Logs go to stderr so stdout carries only
// command output. An empty level in dev mode means debug.
func initLogger(devMode bool, level string) (*zap.Logger, error) {
	if devMode {
		return logging.NewDevelopmentLogger(level)
	}
	cfg := logging.DefaultConfig()
	cfg.Level = level
	return logging.NewLogger(cfg)
}

// loadConfig merges the config file, the environment and the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if username != "" {
		cfg.Username = username
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if timeout > 0 {
		cfg.Timeout.Duration = timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newService builds the API client and trunk service for cmd and returns a
// context bounded by the configured timeout.
func newService(cmd *cobra.Command) (context.Context, context.CancelFunc, *trunk.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	if cfg.Path != "" {
		logger.Debug("loaded config", zap.String("path", cfg.Path))
	}

	client, err := sdk.NewClient(cfg.ToClientConfig(logger, metrics.ObserveAPIRequest))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create API client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout.Duration)
	return ctx, cancel, trunk.NewService(client), nil
}

// versionString returns formatted version information
func versionString() string {
	return fmt.Sprintf("vlantrunk %s (commit: %s, built: %s)",
		Version, Commit, BuildDate)
}
