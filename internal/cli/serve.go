package cli

import (
	"github.com/spf13/cobra"

	"github.com/sharkusmanch/svcwrap/internal/app"
	"github.com/sharkusmanch/svcwrap/internal/domain"
	"github.com/sharkusmanch/svcwrap/internal/platform"
)

// NewRunServiceCmd creates the run-service command.
func NewRunServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   domain.RunServiceCommand + " NAME",
		Short: "Run as the service NAME (invoked by the service manager)",
		Long: `Run one activation of the service NAME.

The service manager launches installed instances with these arguments.
On Windows the process connects to the Service Control Manager; in an
interactive session, or on other platforms, it runs in the foreground and
treats Ctrl+C as a stop request.`,
		Args: cobra.ArbitraryArgs,
		RunE: runService,
	}

	return cmd
}

func runService(cmd *cobra.Command, args []string) error {
	identity, err := app.IdentityFromArgs(append([]string{domain.RunServiceCommand}, args...))
	if err != nil {
		return err
	}

	runtime := app.NewRuntime(app.WithStore(newStore()))
	return platform.NewServiceHost().Run(cmd.Context(), identity, runtime)
}
