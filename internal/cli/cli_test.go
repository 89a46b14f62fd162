package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"calpick/internal/locale"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// setupCLI isolates config and env, and pins "now" to 2024-03-15 10:42 local.
func setupCLI(t *testing.T) {
	t.Helper()
	t.Setenv("CALPICK_CONFIG_DIR", t.TempDir())
	for _, k := range []string{"CALPICK_DIR", "CALPICK_LOCALE", "CALPICK_KIND", "CALPICK_FORMAT", "CALPICK_SESSION"} {
		t.Setenv(k, "")
	}
	t.Setenv("NO_COLOR", "1")

	prev := nowFunc
	nowFunc = func() time.Time { return time.Date(2024, time.March, 15, 10, 42, 0, 0, time.Local) }
	t.Cleanup(func() { nowFunc = prev })
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: calpick %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected JSON envelope with a data object; got: %v", env)
	}
	return data
}

func gridCell(t *testing.T, grid map[string]any, row, col int) map[string]any {
	t.Helper()
	rows, _ := grid["items"].([]any)
	if row >= len(rows) {
		t.Fatalf("row %d out of range (%d rows)", row, len(rows))
	}
	cells, _ := rows[row].([]any)
	if col >= len(cells) {
		t.Fatalf("col %d out of range (%d cols)", col, len(cells))
	}
	return cells[col].(map[string]any)
}

func TestGrid_DayView(t *testing.T) {
	setupCLI(t)

	g := mustRun(t, "grid", "--view", "day", "--date", "2024-03-01")
	if g["view"] != "day" || g["title"] != "March 2024" {
		t.Fatalf("unexpected grid header: view=%v title=%v", g["view"], g["title"])
	}
	if rows, _ := g["items"].([]any); len(rows) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(rows))
	}
	if hs, _ := g["headers"].([]any); len(hs) != 7 || hs[0] != "Sun" {
		t.Fatalf("expected en-US headers starting Sunday, got %v", g["headers"])
	}
	first := gridCell(t, g, 0, 0)
	if first["label"] != "25" || first["outsidePeriod"] != true {
		t.Fatalf("expected Feb 25 as leading context cell, got %v", first)
	}
	today := gridCell(t, g, 2, 5)
	if today["label"] != "15" || today["today"] != true {
		t.Fatalf("expected today's cell at row 2 col 5, got %v", today)
	}
}

func TestGrid_LocaleWeekStart(t *testing.T) {
	setupCLI(t)

	g := mustRun(t, "--locale", "en-GB", "grid", "--view", "day", "--date", "2024-03-01")
	if hs, _ := g["headers"].([]any); len(hs) != 7 || hs[0] != "Mon" {
		t.Fatalf("expected en-GB headers starting Monday, got %v", g["headers"])
	}
	if first := gridCell(t, g, 0, 0); first["label"] != "26" {
		t.Fatalf("expected Feb 26 as first cell, got %v", first)
	}
}

func TestGrid_ShiftAndBounds(t *testing.T) {
	setupCLI(t)

	g := mustRun(t, "grid", "--view", "month", "--date", "2024-03-01", "--shift", "1")
	if g["title"] != "2025" {
		t.Fatalf("expected next year's months, got title %v", g["title"])
	}

	g = mustRun(t, "grid", "--view", "day", "--date", "2024-03-01", "--min", "2024-03-10")
	if c := gridCell(t, g, 1, 6); c["label"] != "9" || c["disabled"] != true {
		t.Fatalf("expected March 9 disabled, got %v", c)
	}
	if c := gridCell(t, g, 2, 0); c["label"] != "10" || c["disabled"] != false {
		t.Fatalf("expected March 10 enabled, got %v", c)
	}
	if g["canPrev"] != false || g["canNext"] != true {
		t.Fatalf("expected paging limited by min, got canPrev=%v canNext=%v", g["canPrev"], g["canNext"])
	}
}

func TestGrid_DefaultsToInitialView(t *testing.T) {
	setupCLI(t)

	g := mustRun(t, "--kind", "time", "grid")
	if g["view"] != "hour" || g["title"] != "" {
		t.Fatalf("expected untitled hour view for time kind, got view=%v title=%v", g["view"], g["title"])
	}

	g = mustRun(t, "grid", "--selected", "2024-07-04")
	if g["view"] != "day" || g["title"] != "July 2024" {
		t.Fatalf("expected selection to open its day view, got view=%v title=%v", g["view"], g["title"])
	}
}

func TestGrid_Errors(t *testing.T) {
	setupCLI(t)

	_, stderr, err := runCLI(t, []string{"grid", "--view", "week"})
	if err == nil || !strings.Contains(string(stderr), "unknown view") {
		t.Fatalf("expected unknown view error, got err=%v stderr=%s", err, stderr)
	}
	var ue usageError
	if !errors.As(err, &ue) {
		t.Fatalf("expected usage error, got %T", err)
	}

	// Minute views are not reachable from a date picker.
	_, _, err = runCLI(t, []string{"grid", "--view", "minute"})
	if err == nil {
		t.Fatalf("expected error for unreachable view")
	}

	_, _, err = runCLI(t, []string{"grid", "--date", "yesterday-ish"})
	if err == nil || !strings.Contains(err.Error(), "--date") {
		t.Fatalf("expected --date error, got %v", err)
	}
}

func TestGrid_TextFormat(t *testing.T) {
	setupCLI(t)

	stdout, stderr, err := runCLI(t, []string{"--format", "text", "grid", "--view", "month", "--date", "2024-03-01"})
	if err != nil {
		t.Fatalf("grid text failed: %v\n%s", err, stderr)
	}
	out := string(stdout)
	for _, want := range []string{"2024", "Jan", "Dec", "Mar*"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in text grid:\n%s", want, out)
		}
	}
}

func TestFmtAndParse(t *testing.T) {
	setupCLI(t)

	f := mustRun(t, "--locale", "de-DE", "fmt", "2024-03-05", "d. MMMM yyyy")
	if f["formatted"] != "5. März 2024" {
		t.Fatalf("unexpected formatted value %v", f["formatted"])
	}

	// Default pattern comes from the locale and --kind.
	f = mustRun(t, "--kind", "datetime", "fmt", "2024-03-05 14:30")
	if f["formatted"] != "March 5, 2024 2:30 PM" || f["pattern"] != "MMMM d, yyyy h:mm a" {
		t.Fatalf("unexpected default datetime format: %v", f)
	}

	p := mustRun(t, "parse", "March 5, 2024", "--base", "2023-01-01 09:15")
	if d, _ := p["date"].(string); !strings.HasPrefix(d, "2024-03-05T00:00:00") {
		t.Fatalf("expected fields finer than the day reset, got %v", p["date"])
	}

	p = mustRun(t, "parse", "10:45", "HH:mm", "--base", "2024-06-01")
	if d, _ := p["date"].(string); !strings.HasPrefix(d, "2024-06-01T10:45:00") {
		t.Fatalf("expected base day kept, got %v", p["date"])
	}
}

func TestParse_Errors(t *testing.T) {
	setupCLI(t)

	_, _, err := runCLI(t, []string{"parse", "Xmas 5, 2024"})
	if !errors.Is(err, locale.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	_, _, err = runCLI(t, []string{"parse", "2024", "yyyy Q"})
	var ue usageError
	if !errors.As(err, &ue) {
		t.Fatalf("expected usage error for bad pattern, got %T %v", err, err)
	}

	_, _, err = runCLI(t, []string{"fmt", "2024-03-05", "yyyy Q"})
	if !errors.As(err, &ue) {
		t.Fatalf("expected usage error for bad fmt pattern, got %T %v", err, err)
	}
}

func TestLocaleCmd(t *testing.T) {
	setupCLI(t)

	l := mustRun(t, "locale")
	names, _ := l["locales"].([]any)
	found := false
	for _, n := range names {
		if n == "en-GB" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected en-GB in %v", names)
	}

	v := mustRun(t, "locale", "fr_fr")
	if v["name"] != "fr-FR" {
		t.Fatalf("expected fr-FR values, got %v", v["name"])
	}

	_, stderr, err := runCLI(t, []string{"locale", "de-AT"})
	if !errors.Is(err, locale.ErrUnknownLocale) || !strings.Contains(string(stderr), "de-DE") {
		t.Fatalf("expected suggestion for de-AT, got err=%v stderr=%s", err, stderr)
	}
}

func TestConfigDefaults(t *testing.T) {
	setupCLI(t)

	dir := os.Getenv("CALPICK_CONFIG_DIR")
	cfg := `{"locale":"en-GB","kind":"month","formats":{"month":"MMM yyyy"}}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	g := mustRun(t, "grid")
	if g["view"] != "year" {
		t.Fatalf("expected month kind to open the year view, got %v", g["view"])
	}
	f := mustRun(t, "fmt", "2024-03-05")
	if f["formatted"] != "Mar 2024" || f["locale"] != "en-GB" {
		t.Fatalf("expected config format override, got %v", f)
	}

	// Flags win over the file.
	f = mustRun(t, "--kind", "date", "fmt", "2024-03-05")
	if f["formatted"] != "5 March 2024" {
		t.Fatalf("expected en-GB date format, got %v", f["formatted"])
	}
}

func TestConfigBounds(t *testing.T) {
	setupCLI(t)

	dir := os.Getenv("CALPICK_CONFIG_DIR")
	cfg := `{"minDate":"2024-03-10"}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	g := mustRun(t, "grid", "--view", "day", "--date", "2024-03-01")
	if c := gridCell(t, g, 1, 6); c["disabled"] != true {
		t.Fatalf("expected config minDate to disable March 9, got %v", c)
	}
}

func TestConfigCmd_SetPersistsAndApplies(t *testing.T) {
	setupCLI(t)

	mustRun(t, "config", "set", "locale", "en_gb")
	mustRun(t, "config", "set", "kind", "month")
	mustRun(t, "config", "set", "firstDayOfWeek", "0")
	d := mustRun(t, "config", "set", "tui.theme", "light")
	cfg, _ := d["config"].(map[string]any)
	if cfg["locale"] != "en-GB" || cfg["kind"] != "month" {
		t.Fatalf("unexpected saved config: %v", cfg)
	}

	b, err := os.ReadFile(filepath.Join(os.Getenv("CALPICK_CONFIG_DIR"), "config.json"))
	if err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(b, &onDisk); err != nil {
		t.Fatalf("parse config file: %v\n%s", err, b)
	}
	if onDisk["firstDayOfWeek"] != float64(0) {
		t.Fatalf("expected explicit Sunday on disk, got %v", onDisk["firstDayOfWeek"])
	}
	if tui, _ := onDisk["tui"].(map[string]any); tui["theme"] != "light" {
		t.Fatalf("expected tui.theme on disk, got %v", onDisk["tui"])
	}

	// Later invocations pick the file up: en-GB names, month kind, Sunday weeks.
	f := mustRun(t, "fmt", "2024-03-05")
	if f["locale"] != "en-GB" || f["pattern"] != "MMMM yyyy" {
		t.Fatalf("expected month kind in en-GB, got %v", f)
	}
	g := mustRun(t, "--kind", "date", "grid", "--view", "day", "--date", "2024-03-01")
	if headers, _ := g["headers"].([]any); len(headers) == 0 || headers[0] != "Sun" {
		t.Fatalf("expected Sunday-first headers, got %v", g["headers"])
	}

	mustRun(t, "config", "unset", "firstDayOfWeek")
	s := mustRun(t, "config", "show")
	cfg, _ = s["config"].(map[string]any)
	if _, ok := cfg["firstDayOfWeek"]; ok {
		t.Fatalf("expected firstDayOfWeek cleared, got %v", cfg)
	}
}

func TestConfigCmd_RejectsBadValues(t *testing.T) {
	setupCLI(t)

	for _, args := range [][]string{
		{"config", "set", "colour", "red"},
		{"config", "set", "kind", "week"},
		{"config", "set", "firstDayOfWeek", "7"},
		{"config", "set", "formats.date", "yyyy Q"},
		{"config", "set", "tui.theme", "neon"},
		{"config", "set", "locale", "xx-XX"},
	} {
		_, _, err := runCLI(t, args)
		var ue usageError
		if !errors.As(err, &ue) {
			t.Fatalf("%v: expected usage error, got %v", args, err)
		}
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("CALPICK_CONFIG_DIR"), "config.json")); !os.IsNotExist(err) {
		t.Fatalf("rejected values must not write the file, stat err %v", err)
	}
}

func TestDocsCmd(t *testing.T) {
	setupCLI(t)

	d := mustRun(t, "docs")
	if topics, _ := d["topics"].([]any); len(topics) != 3 {
		t.Fatalf("expected 3 topics, got %v", d["topics"])
	}

	stdout, _, err := runCLI(t, []string{"docs", "views", "--raw"})
	if err != nil || !strings.Contains(string(stdout), "final view") {
		t.Fatalf("expected raw views doc, err=%v", err)
	}

	stdout, _, err = runCLI(t, []string{"--format", "text", "docs", "patterns"})
	if err != nil || len(bytes.TrimSpace(stdout)) == 0 {
		t.Fatalf("expected rendered patterns doc, err=%v", err)
	}

	_, _, err = runCLI(t, []string{"docs", "nope"})
	if err == nil {
		t.Fatalf("expected unknown topic error")
	}
}

func TestParseDateTime(t *testing.T) {
	setupCLI(t)

	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)},
		{"2024-03-05 14:30", time.Date(2024, time.March, 5, 14, 30, 0, 0, time.Local)},
		{"2024-03-05T14:30:15", time.Date(2024, time.March, 5, 14, 30, 15, 0, time.Local)},
		{"2024-03-05T14:30:00Z", time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)},
		{"today", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local)},
		{"NOW", time.Date(2024, time.March, 15, 10, 42, 0, 0, time.Local)},
	}
	for _, tc := range cases {
		got, err := parseDateTime(tc.in)
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("%q: got %s want %s", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "03/05/2024", "2024-3-5"} {
		if _, err := parseDateTime(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
	if p, err := parseOptionalDateTime("  "); err != nil || p != nil {
		t.Fatalf("expected nil for empty optional, got %v %v", p, err)
	}
}
