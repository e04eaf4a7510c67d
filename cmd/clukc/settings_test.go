package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"clukc/internal/driver"
	"clukc/internal/parser"
	"clukc/internal/trace"
)

// newTestCompileCommand mirrors rootCmd + compileCmd flags without
// touching the package-level commands.
func newTestCompileCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	root := &cobra.Command{Use: "clukc"}
	registerRootFlags(root)
	child := &cobra.Command{Use: "compile", RunE: func(*cobra.Command, []string) error { return nil }}
	child.Flags().String("redeclare", "allow", "")
	child.Flags().Int("jobs", 0, "")
	child.Flags().Bool("no-cache", false, "")
	root.AddCommand(child)
	root.SetArgs(append([]string{"compile"}, args...))
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	return child
}

func TestResolveSettingsDefaults(t *testing.T) {
	cmd := newTestCompileCommand(t)
	s, err := resolveSettings(cmd, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if s.redeclare != parser.RedeclareAllow || s.maxDiagnostics != 100 || !s.cache || s.traceLevel != trace.LevelOff {
		t.Fatalf("settings = %+v", s)
	}
	if s.manifest != "" {
		t.Fatalf("unexpected manifest %q", s.manifest)
	}
}

func TestResolveSettingsFlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := "[compile]\nredeclare = \"warn\"\njobs = 4\nmax-diagnostics = 7\n[cache]\nenabled = true\n"
	if err := os.WriteFile(filepath.Join(dir, "clukc.toml"), []byte(manifest), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCompileCommand(t)
	s, err := resolveSettings(cmd, dir)
	if err != nil {
		t.Fatal(err)
	}
	if s.redeclare != parser.RedeclareWarn || s.jobs != 4 || s.maxDiagnostics != 7 {
		t.Fatalf("manifest not applied: %+v", s)
	}

	cmd = newTestCompileCommand(t, "--redeclare=error", "--jobs=1", "--no-cache", "--max-diagnostics=3", "--trace=-")
	s, err = resolveSettings(cmd, dir)
	if err != nil {
		t.Fatal(err)
	}
	if s.redeclare != parser.RedeclareError || s.jobs != 1 || s.cache || s.maxDiagnostics != 3 {
		t.Fatalf("flags not applied: %+v", s)
	}
	if s.traceLevel != trace.LevelPhase || s.traceOutput != "-" {
		t.Fatalf("--trace should enable phase tracing: %+v", s)
	}
}

func TestResolveSettingsRejectsBadFlag(t *testing.T) {
	cmd := newTestCompileCommand(t, "--redeclare=maybe")
	if _, err := resolveSettings(cmd, t.TempDir()); err == nil {
		t.Fatalf("expected an error for an invalid policy")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Errorf("expected an error")
	}
}

func TestWriteGlobals(t *testing.T) {
	var buf bytes.Buffer
	err := writeGlobals(&buf, []driver.Global{
		{Name: "x", Type: "int", Location: "%t1"},
		{Name: "ratio", Type: "float", Location: "%t2"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := "; globals\n" +
		";   x      int    %t1\n" +
		";   ratio  float  %t2\n"
	if buf.String() != want {
		t.Fatalf("got:\n%q\nwant:\n%q", buf.String(), want)
	}
}
