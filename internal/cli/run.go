package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sharkusmanch/svcwrap/internal/app"
	"github.com/sharkusmanch/svcwrap/internal/domain"
	"github.com/sharkusmanch/svcwrap/internal/logging"
	"github.com/sharkusmanch/svcwrap/internal/platform"
)

// NewRunCmd creates the run command.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run NAME",
		Short: "Run one activation of NAME in the foreground",
		Long: `Run one activation of the service NAME attached to the console.

Status reports are printed instead of being sent to the service manager and
service logs go to stderr instead of the system log. Ctrl+C is delivered as
a stop request. This is useful for debugging a service's configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: runRun,
	}

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	identity, err := app.IdentityFromArgs([]string{domain.RunServiceCommand, args[0]})
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	runtime := app.NewRuntime(
		app.WithStore(newStore()),
		app.WithStderr(stderr),
		app.WithLogOpener(consoleLogOpener(stderr)),
	)

	host := platform.NewForegroundHost(platform.WithOutput(cmd.OutOrStdout()))
	return host.Run(cmd.Context(), identity, runtime)
}

// consoleLogOpener sends service logs to w, which is never closed.
func consoleLogOpener(w io.Writer) app.LogOpener {
	return func(identity string, level domain.LogLevel) (*slog.Logger, io.Closer, error) {
		sink := logging.NewWriterSink(struct{ io.Writer }{w})
		return logging.New(sink, level), sink, nil
	}
}

