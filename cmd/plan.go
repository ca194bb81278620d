package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vgate/internal/harness"
	"vgate/internal/versiongate"
)

type planOptions struct {
	manifest string
	name     string
	tags     []string
}

func newPlanCmd(root *rootOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show which manifest cases would run or be skipped",
		Long: `Plan loads a case manifest and prints the gate decision for every case
without running anything. Use --runtime-version to preview another toolchain.

Example usage:
  vgate plan
  vgate plan --manifest ci/vgate.yaml --runtime-version go1.22.7
  vgate plan --tag rewrite`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "Path to a manifest file or directory (default from config)")
	cmd.Flags().StringVar(&opts.name, "name", "", "Only cases whose name matches this glob")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "Only cases carrying one of these tags")

	return cmd
}

func runPlan(cmd *cobra.Command, root *rootOptions, opts *planOptions) error {
	manifestPath := opts.manifest
	if manifestPath == "" {
		manifestPath = root.cfg.Manifest
	}

	loader := harness.NewCaseLoader(false)
	m, err := loader.LoadManifest(manifestPath)
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	cases := loader.FilterCases(harness.ManifestCases(m), harness.TestConfiguration{
		Name: opts.name,
		Tags: opts.tags,
	})

	runtimeVersion := versiongate.Resolve(root.cfg.RuntimeVersion)
	return harness.WritePlan(cmd.OutOrStdout(), runtimeVersion, harness.Plan(runtimeVersion, cases))
}
