package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"vgate/internal/color"
	"vgate/internal/config"
	"vgate/pkg/logging"
)

// exitError carries a process exit code through cobra without printing an error.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// rootOptions holds state shared by all subcommands.
type rootOptions struct {
	runtimeVersion string
	logLevel       string
	noColor        bool

	// cfg is populated by PersistentPreRunE
	cfg config.VgateConfig
}

var version = "dev"

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "vgate",
		Short: "Gate test cases on the runtime version",
		Long: `vgate decides whether test cases should run on the current runtime.

Each case may declare a version constraint: a required prefix (matches) and an
excluded prefix (does_not_match). Cases whose constraint does not admit the
runtime version are reported as skipped, never as failed. Case bodies run on a
dedicated worker, and failures that arrive wrapped because the worker was
interrupted are reported with their original cause.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. invalid arguments, failing cases)
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	cmd.SetVersionTemplate(`{{printf "vgate version %s\n" .Version}}`)

	cmd.PersistentFlags().StringVar(&opts.runtimeVersion, "runtime-version", "", "Runtime version to gate against (default: the running Go runtime)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDecideCmd(opts))
	cmd.AddCommand(newPlanCmd(opts))
	cmd.AddCommand(newRunCmd(opts))

	return cmd
}

// load layers configuration files and flags, then initializes logging.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("runtime-version") {
		cfg.RuntimeVersion = o.runtimeVersion
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())

	if o.noColor {
		color.Disable()
	} else {
		color.Initialize(lipgloss.HasDarkBackground())
	}

	o.cfg = cfg
	return nil
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	os.Exit(execute(rootCmd))
}

func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return 1
}
