// Package cli provides the command-line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sharkusmanch/svcwrap/internal/config"
	"github.com/sharkusmanch/svcwrap/internal/domain"
	"github.com/sharkusmanch/svcwrap/internal/platform"
	"github.com/sharkusmanch/svcwrap/pkg/version"
)

var (
	cfgFile  string
	logLevel string
)

// newServiceManager is replaced in tests.
var newServiceManager = platform.NewServiceManager

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Run a command once as a managed system service",
		Long: `svcwrap runs under the host service manager, reads its per-instance
configuration, runs one configured command with its output appended to a
log file, and reports its lifecycle back to the service manager.

Each installed instance is a separate service named on the command line.`,
		Version: version.Get().String(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "read service parameters from this TOML file instead of the platform store")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "console log level for administrative commands (error, warn, info, debug, trace)")

	// Add subcommands
	rootCmd.AddCommand(NewRunServiceCmd())
	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewVersionCmd())
	rootCmd.AddCommand(NewInstallCmd())
	rootCmd.AddCommand(NewUninstallCmd())
	rootCmd.AddCommand(NewStartCmd())
	rootCmd.AddCommand(NewStopCmd())
	rootCmd.AddCommand(NewStatusCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig sets up console logging for the administrative commands. The
// service itself logs to the system log once its configuration is loaded.
func initConfig() error {
	level := slog.LevelWarn
	if logLevel != "" {
		level = domain.ParseLogLevel(logLevel).Slog()
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))

	return nil
}

// newStore returns the configuration backend selected by --config.
func newStore() config.Store {
	if cfgFile != "" {
		slog.Debug("using configuration file", "path", cfgFile)
		return config.NewViperStore(cfgFile)
	}
	return config.NewDefaultStore()
}
