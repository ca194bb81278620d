package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vgate/internal/color"
	"vgate/internal/config"
	"vgate/internal/harness"
	"vgate/pkg/logging"
)

type runOptions struct {
	manifest string
	timeout  time.Duration
	parallel int
	failFast bool
	report   string
	output   string
	verbose  bool
	debug    bool
	noColor  bool
	name     string
	tags     []string
}

// completeOutputFlag provides shell completion for the output flag
func completeOutputFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"console", "quiet", "json"}, cobra.ShellCompDirectiveDefault
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the command cases of a manifest, gated on the runtime version",
		Long: `Run executes every manifest case that has a command. Each case is first
checked against the runtime version; cases whose constraint does not admit it
are reported as SKIPPED and never executed.

Results:
- PASSED:  the command exited with status 0
- FAILED:  the command failed; the original failure is reported
- SKIPPED: the version constraint did not admit the runtime
- ERROR:   the case timed out or could not be started

Example usage:
  vgate run                                # Run all cases from vgate.yaml
  vgate run --manifest ci/ --parallel=4    # Run a directory of manifests
  vgate run --tag rewrite --fail-fast      # Run tagged cases, stop on failure
  vgate run --output json > results.json   # Machine-readable output
  vgate run --report ./reports             # Save a detailed JSON report

Exit status is 1 when any case failed or errored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "Path to a manifest file or directory (default from config)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "Overall execution timeout")
	cmd.Flags().IntVar(&opts.parallel, "parallel", config.DefaultParallel, fmt.Sprintf("Number of parallel workers (1-%d)", config.MaxParallel))
	cmd.Flags().BoolVar(&opts.failFast, "fail-fast", false, "Stop execution on first failure")
	cmd.Flags().StringVar(&opts.report, "report", "", "Directory to save a detailed JSON report")
	cmd.Flags().StringVar(&opts.output, "output", config.DefaultOutput, "Output format: console, quiet, json")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug output")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.name, "name", "", "Only run cases whose name matches this glob")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "Only run cases carrying one of these tags")

	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputFlag)

	return cmd
}

// effectiveConfig applies changed flags on top of the layered configuration.
func (o *runOptions) effectiveConfig(cmd *cobra.Command, cfg config.VgateConfig) (config.VgateConfig, error) {
	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Manifest = o.manifest
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("parallel") {
		cfg.Parallel = o.parallel
	}
	if flags.Changed("fail-fast") {
		cfg.FailFast = o.failFast
	}
	if flags.Changed("report") {
		cfg.ReportPath = o.report
	}
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if err := cfg.Validate(); err != nil {
		return config.VgateConfig{}, err
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	cfg, err := opts.effectiveConfig(cmd, root.cfg)
	if err != nil {
		return err
	}

	if opts.noColor {
		color.Disable()
	}

	// Handle interrupts gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	testConfig := harness.TestConfiguration{
		RuntimeVersion: cfg.RuntimeVersion,
		Timeout:        cfg.Timeout,
		Parallel:       cfg.Parallel,
		FailFast:       cfg.FailFast,
		Verbose:        opts.verbose,
		Debug:          opts.debug,
		ManifestPath:   cfg.Manifest,
		ReportPath:     cfg.ReportPath,
		Name:           opts.name,
		Tags:           opts.tags,
		Output:         harness.OutputFormat(cfg.Output),
	}

	framework, err := harness.NewTestFramework(testConfig, cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to create test framework: %w", err)
	}

	m, err := framework.Loader.LoadManifest(cfg.Manifest)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	cases := harness.CommandCases(m)
	if len(cases) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "⚠️  No runnable cases found in %s\n", cfg.Manifest)
		return nil
	}

	result, err := framework.Runner.Run(ctx, testConfig, cases)
	if err != nil {
		return fmt.Errorf("test execution failed: %w", err)
	}

	if !result.Succeeded() {
		logging.Debug("CLI", "%d failed, %d errors", result.FailedCases, result.ErrorCases)
		return &exitError{code: 1}
	}
	return nil
}
