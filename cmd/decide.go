package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vgate/internal/versiongate"
)

// skipExitCode is returned by decide --exit-code when the case would be skipped.
const skipExitCode = 2

type decideOptions struct {
	matches      string
	doesNotMatch string
	constraint   string
	exitCode     bool
	verbose      bool
}

func newDecideCmd(root *rootOptions) *cobra.Command {
	opts := &decideOptions{}

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Decide whether a constraint admits the runtime version",
		Long: `Decide prints RUN when the constraint admits the runtime version and SKIP
otherwise. Without any constraint flag the answer is always RUN.

Example usage:
  vgate decide --matches go1.2 --does-not-match go1.20
  vgate decide --constraint matches=go1.24 --runtime-version go1.23.4
  vgate decide --matches go1.24 --exit-code && go test ./generics/...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecide(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.matches, "matches", "", "Required runtime version prefix")
	cmd.Flags().StringVar(&opts.doesNotMatch, "does-not-match", "", "Excluded runtime version prefix")
	cmd.Flags().StringVar(&opts.constraint, "constraint", "", "Compact constraint, e.g. matches=go1.2,does_not_match=go1.20")
	cmd.Flags().BoolVar(&opts.exitCode, "exit-code", false, fmt.Sprintf("Exit with status %d when the decision is SKIP", skipExitCode))
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Also print the runtime version and constraint")

	cmd.MarkFlagsMutuallyExclusive("constraint", "matches")
	cmd.MarkFlagsMutuallyExclusive("constraint", "does-not-match")

	return cmd
}

func runDecide(cmd *cobra.Command, root *rootOptions, opts *decideOptions) error {
	var c *versiongate.Constraint
	switch {
	case opts.constraint != "":
		parsed, err := versiongate.ParseConstraint(opts.constraint)
		if err != nil {
			return err
		}
		c = parsed
	case cmd.Flags().Changed("matches") || cmd.Flags().Changed("does-not-match"):
		c = &versiongate.Constraint{Matches: opts.matches, DoesNotMatch: opts.doesNotMatch}
	}

	runtimeVersion := versiongate.Resolve(root.cfg.RuntimeVersion)
	outcome := versiongate.Decide(c, runtimeVersion)

	if opts.verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "%s (runtime %s, constraint %s)\n", outcome, runtimeVersion, c)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), outcome)
	}

	if opts.exitCode && outcome == versiongate.Skip {
		return &exitError{code: skipExitCode}
	}
	return nil
}
