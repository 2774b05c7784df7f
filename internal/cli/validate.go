package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sharkusmanch/svcwrap/internal/config"
	"github.com/sharkusmanch/svcwrap/internal/metrics"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate NAME",
		Short: "Show the effective configuration of NAME and check it",
		Long: `Resolve the configuration of the service NAME the way the service would
and check that it can run.

This checks:
- Configuration store is readable
- Working directory exists (if set)
- Workload command is executable
- Log file directory exists
- Pushgateway connectivity (if set)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	out := cmd.OutOrStdout()
	identity := args[0]

	// Load config
	fmt.Fprintln(out, "Configuration:")
	cfg, err := config.NewLoader(newStore()).Load(identity)
	if err != nil {
		fmt.Fprintf(out, "  ✗ Configuration store: %v\n", err)
		return err
	}
	fmt.Fprintf(out, "  ✓ Configuration store readable\n")

	if cfgFile != "" {
		fmt.Fprintf(out, "  Config file: %s\n", cfgFile)
	} else {
		fmt.Fprintf(out, "  Parameters: %s\n", config.NamespaceFor(identity).Path())
	}
	fmt.Fprintf(out, "  Log level: %s\n", cfg.LogLevel)
	if cfg.HasWorkDir() {
		fmt.Fprintf(out, "  Working directory: %s\n", cfg.WorkDir)
	}
	fmt.Fprintf(out, "  Command: %s\n", cfg.Command)
	fmt.Fprintf(out, "  Arguments: %s\n", strings.Join(cfg.Arguments, " "))
	fmt.Fprintf(out, "  Log file: %s\n", cfg.LogFile)
	if cfg.PushgatewayURL != "" {
		fmt.Fprintf(out, "  Pushgateway URL: %s\n", cfg.PushgatewayURL)
	} else {
		fmt.Fprintf(out, "  Metrics: disabled\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Checks:")
	failed := 0

	if cfg.HasWorkDir() {
		if info, err := os.Stat(cfg.WorkDir); err != nil || !info.IsDir() {
			fmt.Fprintf(out, "  ✗ Working directory: not a directory\n")
			failed++
		} else {
			fmt.Fprintf(out, "  ✓ Working directory exists\n")
		}
	}

	if path, err := exec.LookPath(cfg.Command); err != nil {
		fmt.Fprintf(out, "  ✗ Command: %v\n", err)
		failed++
	} else {
		fmt.Fprintf(out, "  ✓ Command found: %s\n", path)
	}

	if info, err := os.Stat(filepath.Dir(cfg.LogFile)); err != nil || !info.IsDir() {
		fmt.Fprintf(out, "  ✗ Log file directory: %s does not exist\n", filepath.Dir(cfg.LogFile))
		failed++
	} else {
		fmt.Fprintf(out, "  ✓ Log file directory exists\n")
	}

	if cfg.PushgatewayURL != "" {
		pushgatewayClient := metrics.NewPushgatewayClient(cfg.PushgatewayURL)
		if err := pushgatewayClient.Validate(ctx); err != nil {
			fmt.Fprintf(out, "  ✗ Pushgateway: %v\n", err)
			failed++
		} else {
			fmt.Fprintf(out, "  ✓ Pushgateway reachable\n")
		}
	}

	fmt.Fprintln(out)
	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	fmt.Fprintln(out, "Validation complete.")
	return nil
}
