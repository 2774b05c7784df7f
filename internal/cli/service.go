package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sharkusmanch/svcwrap/internal/config"
	"github.com/sharkusmanch/svcwrap/internal/domain"
	"github.com/sharkusmanch/svcwrap/internal/platform"
)

// installFlags holds the install-service flag values.
type installFlags struct {
	description    string
	dependencies   []string
	displayName    string
	username       string
	password       string
	manual         bool
	logLevel       string
	workDir        string
	command        string
	arguments      []string
	logFile        string
	pushgatewayURL string
}

var install installFlags

// NewInstallCmd creates the install-service command.
func NewInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install-service NAME",
		Short: "Install NAME as a system service",
		Long: `Install a service instance named NAME.

On Windows this registers NAME as an event log source, creates an
auto-start service launched as "svcwrap run-service NAME" and writes its
parameters under HKLM\SYSTEM\CurrentControlSet\Services\NAME\Parameters.`,
		Args: cobra.ExactArgs(1),
		RunE: runInstall,
	}

	f := cmd.Flags()
	f.StringVarP(&install.description, "description", "d", "", "service description (default \""+platform.DefaultDescription+"\")")
	f.StringArrayVarP(&install.dependencies, "dependency", "D", nil, "service that must start first (repeatable)")
	f.StringVarP(&install.displayName, "display-name", "N", "", "service display name (default NAME)")
	f.StringVar(&install.username, "username", "", "account to run the service as (default LocalSystem)")
	f.StringVar(&install.password, "password", "", "password for --username")
	f.BoolVar(&install.manual, "manual", false, "install with manual instead of automatic start")
	f.StringVar(&install.logLevel, "loglevel", string(config.InstallLogLevel), "service log level (off, error, warn, info, debug, trace)")
	f.StringVar(&install.workDir, "workdir", "", "working directory for the workload")
	f.StringVar(&install.command, "command", "", "workload command (default "+config.DefaultCommand+")")
	f.StringArrayVar(&install.arguments, "arg", nil, "workload argument (repeatable)")
	f.StringVar(&install.logFile, "log-file", "", "file the workload output is appended to (default "+config.DefaultLogFile+")")
	f.StringVar(&install.pushgatewayURL, "pushgateway-url", "", "Prometheus Pushgateway to report workload results to")

	return cmd
}

// installOptions builds the install request for name from the flag values.
func (f installFlags) installOptions(name string) (platform.InstallOptions, error) {
	level := strings.ToLower(strings.TrimSpace(f.logLevel))
	if domain.ParseLogLevel(level).String() != level {
		return platform.InstallOptions{}, fmt.Errorf("invalid log level %q", f.logLevel)
	}

	params := map[string]string{config.KeyLogLevel: level}
	for key, value := range map[string]string{
		config.KeyWorkDir:        f.workDir,
		config.KeyCommand:        f.command,
		config.KeyLogFile:        f.logFile,
		config.KeyPushgatewayURL: f.pushgatewayURL,
	} {
		if value != "" {
			params[key] = value
		}
	}

	opts := platform.InstallOptions{
		Name:         name,
		DisplayName:  f.displayName,
		Description:  f.description,
		Dependencies: f.dependencies,
		Username:     f.username,
		Password:     f.password,
		AutoStart:    !f.manual,
		Parameters:   params,
	}
	if len(f.arguments) > 0 {
		opts.ListParameters = map[string][]string{config.KeyArguments: f.arguments}
	}
	return opts, nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	mgr, err := serviceManager()
	if err != nil {
		return err
	}

	opts, err := install.installOptions(args[0])
	if err != nil {
		return err
	}

	if err := mgr.Install(cmd.Context(), opts); err != nil {
		return fmt.Errorf("failed to install service: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Service installed successfully.")
	fmt.Fprintf(cmd.OutOrStdout(), "Use '%s start %s' to start the service.\n", config.AppName, opts.Name)
	return nil
}

// NewUninstallCmd creates the uninstall-service command.
func NewUninstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall-service NAME",
		Short: "Stop and remove the service NAME",
		Long: `Stop the service NAME, waiting until it reports stopped, then delete it
and remove its event log source.`,
		Args: cobra.ExactArgs(1),
		RunE: runUninstall,
	}

	return cmd
}

func runUninstall(cmd *cobra.Command, args []string) error {
	mgr, err := serviceManager()
	if err != nil {
		return err
	}

	if err := mgr.Uninstall(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to uninstall service: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Service uninstalled successfully.")
	return nil
}

// NewStartCmd creates the start command.
func NewStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start NAME",
		Short: "Start the installed service NAME",
		Args:  cobra.ExactArgs(1),
		RunE:  runStart,
	}

	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	mgr, err := serviceManager()
	if err != nil {
		return err
	}

	if err := mgr.Start(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Service started.")
	return nil
}

// NewStopCmd creates the stop command.
func NewStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop NAME",
		Short: "Stop the installed service NAME",
		Long: `Request a stop of the service NAME and wait for it to report stopped.

A running workload is not interrupted; the service stops once it finishes.`,
		Args: cobra.ExactArgs(1),
		RunE: runStop,
	}

	return cmd
}

func runStop(cmd *cobra.Command, args []string) error {
	mgr, err := serviceManager()
	if err != nil {
		return err
	}

	if err := mgr.Stop(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to stop service: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Service stopped.")
	return nil
}

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status NAME",
		Short: "Show the status of the service NAME",
		Args:  cobra.ExactArgs(1),
		RunE:  runStatus,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	mgr, err := serviceManager()
	if err != nil {
		return err
	}

	status, err := mgr.Status(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get service status: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Service Status: %s\n", status.State)
	if status.PID > 0 {
		fmt.Fprintf(out, "PID: %d\n", status.PID)
	}
	if status.Message != "" {
		fmt.Fprintf(out, "Message: %s\n", status.Message)
	}

	return nil
}

func serviceManager() (platform.ServiceManager, error) {
	mgr := newServiceManager()
	if !mgr.IsSupported() {
		return nil, fmt.Errorf("service management is not supported on this platform")
	}
	return mgr, nil
}
