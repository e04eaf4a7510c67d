package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"clukc/internal/diagfmt"
	"clukc/internal/driver"
	"clukc/internal/source"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] <file.ck|dir>",
	Short: "Translate source files to three-address code",
	Long: `Compile translates one file, or every .ck file under a directory, into
three-address code. Listings go to stdout and diagnostics to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	compileCmd.Flags().String("redeclare", "allow", "same-scope redeclaration (allow|warn|error)")
	compileCmd.Flags().Int("jobs", 0, "files compiled in parallel (0 = GOMAXPROCS)")
	compileCmd.Flags().Bool("no-cache", false, "bypass the compilation cache")
	compileCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	compileCmd.Flags().Bool("symbols", false, "print the global scope after each listing")
	compileCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type compileFlags struct {
	format  string
	ui      uiMode
	symbols bool
}

func readCompileFlags(cmd *cobra.Command) (compileFlags, error) {
	var f compileFlags
	var err error
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	if f.format != "pretty" && f.format != "json" {
		return f, fmt.Errorf("unknown format: %s", f.format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return f, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if f.ui, err = readUIMode(uiFlag); err != nil {
		return f, err
	}
	if f.symbols, err = cmd.Flags().GetBool("symbols"); err != nil {
		return f, fmt.Errorf("failed to get symbols flag: %w", err)
	}
	return f, nil
}

func runCompile(cmd *cobra.Command, args []string) error {
	target := args[0]
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", target, err)
	}
	startDir := target
	if !info.IsDir() {
		startDir = filepath.Dir(target)
	}

	flags, err := readCompileFlags(cmd)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cmd, startDir)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd, s)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Redeclare:      s.redeclare,
		Jobs:           s.jobs,
	}
	if s.cache {
		cache, err := driver.OpenDiskCache("clukc")
		if err != nil {
			// compiling without a cache is still correct
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
		} else {
			opts.Cache = cache
		}
	}

	files := []string{target}
	if info.IsDir() {
		if files, err = driver.ListSourceFiles(target); err != nil {
			return fmt.Errorf("failed to list %q: %w", target, err)
		}
	}

	var (
		fs    *source.FileSet
		units []*driver.Unit
	)
	if info.IsDir() && len(files) > 1 && shouldUseTUI(flags.ui) {
		fs, units, err = runCompileWithUI(cmd.Context(), "compiling "+target, files, opts)
	} else {
		fs, units, err = driver.CompileFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	colorErr, err := useColor(cmd, os.Stderr)
	if err != nil {
		return err
	}
	switch flags.format {
	case "json":
		err = writeUnitsJSON(cmd.OutOrStdout(), fs, units)
	default:
		err = writeUnitsPretty(cmd.OutOrStdout(), cmd.ErrOrStderr(), fs, units, flags.symbols, colorErr)
	}
	if err != nil {
		return err
	}

	failed := 0
	cached := 0
	for _, u := range units {
		if u.HasErrors() {
			failed++
		}
		if u.Cached {
			cached++
		}
	}
	if !s.quiet && len(units) > 1 {
		fmt.Fprintf(cmd.ErrOrStderr(), "compiled %d files, %d failed, %d cached\n", len(units), failed, cached)
	}
	if failed > 0 {
		return errHadErrors
	}
	return nil
}

func writeUnitsPretty(out, errOut io.Writer, fs *source.FileSet, units []*driver.Unit, symbols, colored bool) error {
	for i, u := range units {
		if u.Bag.Len() > 0 {
			if err := diagfmt.Pretty(errOut, u.Bag, fs, diagfmt.PrettyOpts{Color: colored, ShowNotes: true}); err != nil {
				return err
			}
		}
		if u.HasErrors() {
			continue
		}
		if len(units) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "; %s\n", u.Path)
		}
		if _, err := io.WriteString(out, u.Code); err != nil {
			return err
		}
		if symbols {
			if err := writeGlobals(out, u.Globals); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeGlobals(w io.Writer, globals []driver.Global) error {
	fmt.Fprintln(w, "; globals")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, g := range globals {
		fmt.Fprintf(tw, ";   %s\t%s\t%s\n", g.Name, g.Type, g.Location)
	}
	return tw.Flush()
}

type unitJSON struct {
	Path        string                    `json:"path"`
	Code        []string                  `json:"code"`
	Cached      bool                      `json:"cached"`
	Stats       driver.Stats              `json:"stats"`
	Globals     []driver.Global           `json:"globals"`
	Diagnostics diagfmt.DiagnosticsOutput `json:"diagnostics"`
}

func writeUnitsJSON(w io.Writer, fs *source.FileSet, units []*driver.Unit) error {
	out := make([]unitJSON, 0, len(units))
	for _, u := range units {
		lines := strings.Split(strings.TrimSuffix(u.Code, "\n"), "\n")
		if u.Code == "" {
			lines = []string{}
		}
		out = append(out, unitJSON{
			Path:        u.Path,
			Code:        lines,
			Cached:      u.Cached,
			Stats:       u.Stats,
			Globals:     u.Globals,
			Diagnostics: diagfmt.BuildDiagnosticsOutput(u.Bag, fs, diagfmt.JSONOpts{IncludeNotes: true}),
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
