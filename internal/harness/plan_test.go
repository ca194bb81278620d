package harness

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"vgate/internal/versiongate"
)

func TestPlan(t *testing.T) {
	called := false
	cases := []TestCase{
		{Name: "ungated", Body: func(ctx context.Context) error { called = true; return nil }},
		{Name: "scala-2.11", Constraint: &versiongate.Constraint{Matches: "2.11"}, Tags: []string{"legacy"}},
		{Name: "not-2.11", Constraint: &versiongate.Constraint{DoesNotMatch: "2.11"}},
		{Name: "both", Constraint: &versiongate.Constraint{Matches: "2.11", DoesNotMatch: "2.11"}},
	}

	got := Plan("2.11.8", cases)
	want := []PlanEntry{
		{Name: "ungated", Constraint: "any", Decision: versiongate.Run},
		{Name: "scala-2.11", Constraint: "matches=2.11", Decision: versiongate.Run, Tags: []string{"legacy"}},
		{Name: "not-2.11", Constraint: "does_not_match=2.11", Decision: versiongate.Skip},
		{Name: "both", Constraint: "matches=2.11,does_not_match=2.11", Decision: versiongate.Skip},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
	if called {
		t.Error("Plan must not invoke case bodies")
	}
}

func TestWritePlan(t *testing.T) {
	entries := []PlanEntry{
		{Name: "rename", Constraint: "any", Decision: versiongate.Run},
		{Name: "généric-ünicode", Constraint: "matches=go1.25", Decision: versiongate.Skip, Tags: []string{"rewrite", "slow"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WritePlan(&buf, "go1.24.3", entries))

	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"Runtime version: go1.24.3",
		"",
		"CASE             CONSTRAINT      DECISION  TAGS",
		"rename           any             RUN",
		"généric-ünicode  matches=go1.25  SKIP      rewrite,slow",
		"",
		"1 to run, 1 to skip",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WritePlan() mismatch (-want +got):\n%s", diff)
	}
}
