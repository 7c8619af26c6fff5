package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/agenthooks/internal/config"
	"github.com/ppiankov/agenthooks/internal/logging"
)

var (
	homeDir    string
	configPath string
	logLevel   string
)

// state is filled by the root PersistentPreRunE before any subcommand runs.
var state struct {
	home   string
	cfg    *config.Config
	logger *slog.Logger
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "Install directory (default $AGENTHOOKS_HOME or the executable's directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to agenthooks.yaml (default $AGENTHOOKS_CONFIG or <home>/agenthooks.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Diagnostic log level (debug|info|warn|error)")
}

var rootCmd = &cobra.Command{
	Use:   "agenthooks",
	Short: "Event hooks for AI agent hosts",
	Long: "Hook handlers invoked by an agent host. Each hook reads one JSON payload\n" +
		"from stdin, performs a single side effect, and exits: log-command appends to\n" +
		"the event log, notify shows a desktop notification, play-sound plays a sound.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func setup(cmd *cobra.Command, args []string) error {
	home := homeDir
	if home == "" {
		home = config.Home()
	}

	cfg, err := config.Load(config.Path(configPath, home))
	if err != nil {
		state.logger = logging.New(cmd.ErrOrStderr(), logging.Options{})
		return err
	}

	levelName := cfg.Logging.Level
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		state.logger = logging.New(cmd.ErrOrStderr(), logging.Options{})
		return err
	}

	state.home = home
	state.cfg = cfg
	state.logger = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:   level,
		Journal: cfg.Logging.Journal,
	})
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if state.logger != nil {
			state.logger.Error("agenthooks failed", "error", err)
		} else {
			fmt.Fprintf(os.Stderr, "agenthooks: %v\n", err)
		}
		os.Exit(1)
	}
}
