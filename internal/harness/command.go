package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"vgate/pkg/logging"
)

const (
	// maxOutputTail bounds the command output quoted in failure messages.
	maxOutputTail = 2048
	// commandWaitDelay bounds how long output pipes are drained after the
	// process is killed, in case a grandchild still holds them open.
	commandWaitDelay = 2 * time.Second
)

// CommandCases turns manifest entries that carry a command into runnable
// cases. Entries without a command are skipped with a warning.
func CommandCases(m *Manifest) []TestCase {
	if m == nil {
		return nil
	}

	var cases []TestCase
	for _, mc := range m.Cases {
		if len(mc.Command) == 0 {
			logging.Warn(loaderSubsystem, "Case %s has no command and cannot run outside go test", mc.Name)
			continue
		}
		cases = append(cases, mc.TestCase())
	}
	return cases
}

// ManifestCases converts every manifest entry, including those without a
// command, which end up without a body.
func ManifestCases(m *Manifest) []TestCase {
	if m == nil {
		return nil
	}
	cases := make([]TestCase, 0, len(m.Cases))
	for _, mc := range m.Cases {
		cases = append(cases, mc.TestCase())
	}
	return cases
}

// TestCase converts the entry into a case descriptor. The body is set only
// when the entry has a command.
func (mc ManifestCase) TestCase() TestCase {
	tc := TestCase{
		Name:        mc.Name,
		Description: mc.Description,
		Tags:        mc.Tags,
		Constraint:  mc.GateConstraint(),
		Timeout:     mc.Timeout,
	}
	if len(mc.Command) > 0 {
		tc.Body = commandBody(mc)
	}
	return tc
}

func commandBody(mc ManifestCase) func(ctx context.Context) error {
	argv := append([]string(nil), mc.Command...)
	return func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
		cmd.Dir = mc.Dir
		cmd.WaitDelay = commandWaitDelay
		if len(mc.Env) > 0 {
			cmd.Env = append(os.Environ(), mc.Env...)
		}

		var out bytes.Buffer
		cmd.Stdout = &out
		cmd.Stderr = &out

		logging.Debug(loaderSubsystem, "Running %s: %s", mc.Name, strings.Join(argv, " "))
		if err := cmd.Run(); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("command %q failed: %w%s", strings.Join(argv, " "), err, outputTail(out.String()))
		}
		return nil
	}
}

func outputTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) > maxOutputTail {
		s = "..." + s[len(s)-maxOutputTail:]
	}
	return "\n" + s
}
