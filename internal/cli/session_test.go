package cli

import (
	"errors"
	"strings"
	"testing"

	"calpick/internal/calendar"
)

func sessionOf(t *testing.T, data map[string]any) map[string]any {
	t.Helper()
	sess, ok := data["session"].(map[string]any)
	if !ok {
		t.Fatalf("expected session object, got %v", data)
	}
	return sess
}

func TestSession_DrillDownAndCommit(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	d := mustRun(t, "--dir", dir, "session", "reset", "--kind", "date")
	if v := sessionOf(t, d)["view"]; v != "year" || d["final"] != false {
		t.Fatalf("expected fresh date session in year view, got view=%v final=%v", v, d["final"])
	}

	d = mustRun(t, "--dir", dir, "session", "change", "2024-05-01", "year")
	if v := sessionOf(t, d)["view"]; v != "month" {
		t.Fatalf("expected month view, got %v", v)
	}
	d = mustRun(t, "--dir", dir, "session", "change", "2024-05-01", "month")
	if v := sessionOf(t, d)["view"]; v != "day" {
		t.Fatalf("expected day view, got %v", v)
	}
	grid := d["grid"].(map[string]any)
	if grid["title"] != "May 2024" {
		t.Fatalf("expected May 2024 page, got %v", grid["title"])
	}

	d = mustRun(t, "--dir", dir, "session", "select", "2024-05-20")
	if d["committed"] != "May 20, 2024" || d["final"] != true {
		t.Fatalf("expected commit of May 20, got committed=%v final=%v", d["committed"], d["final"])
	}
	if d["formatted"] != "May 20, 2024" {
		t.Fatalf("expected selection to persist, got %v", d["formatted"])
	}

	// Show is read-only and reports no new commit.
	d = mustRun(t, "--dir", dir, "session", "show")
	if _, ok := d["committed"]; ok {
		t.Fatalf("show must not report a commit: %v", d)
	}
	if sessionOf(t, d)["selected"] == nil {
		t.Fatalf("expected persisted selection")
	}

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "session", "events"})
	if err != nil {
		t.Fatalf("events: %v\n%s", err, stderr)
	}
	if !strings.Contains(string(stdout), `"formatted":"May 20, 2024"`) {
		t.Fatalf("expected selection event, got %s", stdout)
	}
}

func TestSession_ZoomAndPaging(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	mustRun(t, "--dir", dir, "session", "reset", "--selected", "2024-03-05")

	d := mustRun(t, "--dir", dir, "session", "next", "-n", "2")
	if g := d["grid"].(map[string]any); g["title"] != "May 2024" {
		t.Fatalf("expected two pages forward, got %v", g["title"])
	}

	// Zooming out opens the browsed page, not the selection's.
	d = mustRun(t, "--dir", dir, "session", "zoom")
	if v := sessionOf(t, d)["view"]; v != "month" {
		t.Fatalf("expected month view, got %v", v)
	}
	if g := d["grid"].(map[string]any); g["title"] != "2024" {
		t.Fatalf("expected 2024 months, got %v", g["title"])
	}

	d = mustRun(t, "--dir", dir, "session", "zoom", "month")
	if v := sessionOf(t, d)["view"]; v != "year" {
		t.Fatalf("expected year view, got %v", v)
	}
	// Date pickers wrap from the year view back to days.
	d = mustRun(t, "--dir", dir, "session", "zoom")
	if v := sessionOf(t, d)["view"]; v != "day" {
		t.Fatalf("expected wrap to day view, got %v", v)
	}

	_, _, err := runCLI(t, []string{"--dir", dir, "session", "zoom", "minute"})
	if !errors.Is(err, calendar.ErrUnknownView) {
		t.Fatalf("expected unknown view for minute zoom in a date picker, got %v", err)
	}
}

func TestSession_BoundsRejectDisabled(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	mustRun(t, "--dir", dir, "session", "reset", "--selected", "2024-05-15")
	mustRun(t, "--dir", dir, "session", "bounds", "--min", "2024-05-10")

	_, _, err := runCLI(t, []string{"--dir", dir, "session", "select", "2024-05-05"})
	if !errors.Is(err, calendar.ErrItemDisabled) {
		t.Fatalf("expected disabled item error, got %v", err)
	}

	// Clearing the bound re-enables it.
	mustRun(t, "--dir", dir, "session", "bounds", "--min", "")
	d := mustRun(t, "--dir", dir, "session", "select", "2024-05-05")
	if d["committed"] != "May 5, 2024" {
		t.Fatalf("expected commit after clearing bounds, got %v", d["committed"])
	}
}

func TestSession_TimeKindDrillIn(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	d := mustRun(t, "--dir", dir, "--kind", "time", "session", "reset")
	if v := sessionOf(t, d)["view"]; v != "hour" {
		t.Fatalf("expected hour view, got %v", v)
	}
	d = mustRun(t, "--dir", dir, "session", "select", "2024-03-15 14:00")
	if v := sessionOf(t, d)["view"]; v != "minute" {
		t.Fatalf("expected minute view, got %v", v)
	}
	d = mustRun(t, "--dir", dir, "session", "select", "2024-03-15 14:25")
	if d["committed"] != "2:25 PM" {
		t.Fatalf("expected time commit, got %v", d["committed"])
	}

	// Other days are outside the pinned bounds.
	_, _, err := runCLI(t, []string{"--dir", dir, "session", "select", "2024-03-16 14:25"})
	if !errors.Is(err, calendar.ErrItemDisabled) {
		t.Fatalf("expected other day to be disabled, got %v", err)
	}
}

func TestSession_MissingAndDelete(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	_, stderr, err := runCLI(t, []string{"--dir", dir, "session", "show", "--name", "nope"})
	var nf notFoundError
	if !errors.As(err, &nf) || !strings.Contains(string(stderr), "session not found: nope") {
		t.Fatalf("expected not found, got err=%v stderr=%s", err, stderr)
	}

	mustRun(t, "--dir", dir, "session", "reset", "--name", "a")
	mustRun(t, "--dir", dir, "session", "delete", "--name", "a")
	if _, _, err := runCLI(t, []string{"--dir", dir, "session", "show", "--name", "a"}); !errors.As(err, &nf) {
		t.Fatalf("expected deleted session to be gone, got %v", err)
	}
}

func TestSession_TextOutput(t *testing.T) {
	setupCLI(t)
	dir := t.TempDir()

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "--format", "text", "session", "reset", "--selected", "2024-03-05"})
	if err != nil {
		t.Fatalf("reset: %v\n%s", err, stderr)
	}
	out := string(stdout)
	for _, want := range []string{"March 2024", "[5]", "session: default (date, day)", "selected: March 5, 2024"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
}
