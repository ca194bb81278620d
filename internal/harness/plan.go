package harness

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"vgate/internal/color"
	"vgate/internal/versiongate"
)

// PlanEntry is the gate decision for one case, computed without running it.
type PlanEntry struct {
	Name       string
	Constraint string
	Decision   versiongate.Outcome
	Tags       []string
}

// Plan decides every case against version without invoking any body.
func Plan(version string, cases []TestCase) []PlanEntry {
	entries := make([]PlanEntry, 0, len(cases))
	for _, tc := range cases {
		entries = append(entries, PlanEntry{
			Name:       tc.Name,
			Constraint: tc.Constraint.String(),
			Decision:   versiongate.Decide(tc.Constraint, version),
			Tags:       tc.Tags,
		})
	}
	return entries
}

// WritePlan prints entries as an aligned table.
func WritePlan(out io.Writer, version string, entries []PlanEntry) error {
	nameWidth := runewidth.StringWidth("CASE")
	constraintWidth := runewidth.StringWidth("CONSTRAINT")
	for _, e := range entries {
		nameWidth = max(nameWidth, runewidth.StringWidth(e.Name))
		constraintWidth = max(constraintWidth, runewidth.StringWidth(e.Constraint))
	}

	if _, err := fmt.Fprintf(out, "Runtime version: %s\n\n", version); err != nil {
		return err
	}
	header := fmt.Sprintf("%s  %s  %s  %s",
		runewidth.FillRight("CASE", nameWidth),
		runewidth.FillRight("CONSTRAINT", constraintWidth),
		runewidth.FillRight("DECISION", len("DECISION")),
		"TAGS")
	if _, err := fmt.Fprintln(out, strings.TrimRight(header, " ")); err != nil {
		return err
	}

	runCount := 0
	for _, e := range entries {
		decision := runewidth.FillRight(e.Decision.String(), len("DECISION"))
		if e.Decision == versiongate.Run {
			runCount++
			decision = color.Success.Render(decision)
		} else {
			decision = color.Warning.Render(decision)
		}
		line := fmt.Sprintf("%s  %s  %s  %s",
			runewidth.FillRight(e.Name, nameWidth),
			runewidth.FillRight(e.Constraint, constraintWidth),
			decision,
			strings.Join(e.Tags, ","))
		if _, err := fmt.Fprintln(out, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(out, "\n%d to run, %d to skip\n", runCount, len(entries)-runCount)
	return err
}
