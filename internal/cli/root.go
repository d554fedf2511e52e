package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ppiankov/chainrig/internal/config"
)

// errCancelled marks a command whose operation was cancelled. The report has
// already been printed, so Execute only sets the exit code.
var errCancelled = errors.New("operation cancelled")

var (
	flagConfig    string
	flagScene     string
	flagSelect    []string
	flagLocale    string
	flagJournal   string
	flagNoJournal bool
	flagFormat    string
	flagLogLevel  string
	flagDryRun    bool

	// appCfg is the effective configuration after flags are applied.
	appCfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "chainrig",
	Short: "Damped track chain builder for armature bones",
	Long: `Links selected armature bones into a chain of damped track constraints
ordered by head height, and tunes the chain's influence uniformly or as a
top-to-bottom gradient. Works on YAML scene documents.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML (default ~/.chainrig/config.yaml)")
	pf.StringVar(&flagScene, "scene", "", "Path to the scene YAML")
	pf.StringSliceVar(&flagSelect, "select", nil, "Bone names replacing the selection stored in the scene")
	pf.StringVar(&flagLocale, "locale", "", "Report language (en-US, zh-CN)")
	pf.StringVar(&flagJournal, "journal", "", "Path to the operation journal")
	pf.BoolVar(&flagNoJournal, "no-journal", false, "Do not record operations in the journal")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text or json")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: trace, debug, info, warn, error")
	pf.BoolVar(&flagDryRun, "dry-run", false, "Run the operation without saving the scene")
}

// loadSettings resolves config file, environment and flags into appCfg and
// configures logging.
func loadSettings(cmd *cobra.Command, args []string) error {
	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("unknown --format %q: use text or json", flagFormat)
	}

	// init must work even when the existing config is broken.
	if cmd == initCmd || cmd == versionCmd {
		setupLogging(flagLogLevel)
		return nil
	}

	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("locale") {
		cfg.Locale = flagLocale
	}
	if flags.Changed("journal") {
		cfg.Journal = flagJournal
	}
	if flagNoJournal {
		cfg.Journal = ""
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if err := cfg.Normalize(); err != nil {
		return err
	}

	setupLogging(cfg.LogLevel)
	log.Debug().
		Str("config", flagConfig).
		Str("locale", cfg.Locale).
		Str("journal", cfg.Journal).
		Msg("settings loaded")

	appCfg = cfg
	return nil
}

// setupLogging configures the global zerolog logger on stderr.
func setupLogging(level string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errCancelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
