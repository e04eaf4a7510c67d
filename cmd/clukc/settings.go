package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clukc/internal/parser"
	"clukc/internal/project"
	"clukc/internal/trace"
)

// settings is clukc.toml merged with command-line flags; flags win.
type settings struct {
	manifest       string
	redeclare      parser.RedeclarePolicy
	maxDiagnostics int
	jobs           int
	cache          bool
	traceLevel     trace.Level
	traceOutput    string
	traceMode      trace.StorageMode
	quiet          bool
}

func resolveSettings(cmd *cobra.Command, startDir string) (settings, error) {
	cfg := project.Default()
	var s settings
	manifest, ok, err := project.LoadFromDir(startDir)
	if err != nil {
		return s, err
	}
	if ok {
		cfg = manifest.Config
		s.manifest = manifest.Path
	}

	flags := cmd.Flags()
	if flags.Changed("max-diagnostics") {
		if cfg.Compile.MaxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return s, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if flags.Lookup("redeclare") != nil && flags.Changed("redeclare") {
		if cfg.Compile.Redeclare, err = flags.GetString("redeclare"); err != nil {
			return s, fmt.Errorf("failed to get redeclare flag: %w", err)
		}
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		if cfg.Compile.Jobs, err = flags.GetInt("jobs"); err != nil {
			return s, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if flags.Lookup("no-cache") != nil {
		noCache, err := flags.GetBool("no-cache")
		if err != nil {
			return s, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		if noCache {
			cfg.Cache.Enabled = false
		}
	}
	if flags.Changed("trace-level") {
		if cfg.Trace.Level, err = flags.GetString("trace-level"); err != nil {
			return s, fmt.Errorf("failed to get trace-level flag: %w", err)
		}
	}
	if flags.Changed("trace") {
		if cfg.Trace.Output, err = flags.GetString("trace"); err != nil {
			return s, fmt.Errorf("failed to get trace flag: %w", err)
		}
		// --trace alone turns tracing on at phase level
		if cfg.Trace.Level == "off" && !flags.Changed("trace-level") {
			cfg.Trace.Level = "phase"
		}
	}
	if err := cfg.Validate(); err != nil {
		return s, err
	}

	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return s, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	if s.traceMode, err = trace.ParseMode(modeStr); err != nil {
		return s, err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return s, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	// Validate has accepted both enums already
	s.redeclare, _ = cfg.RedeclarePolicy()
	s.traceLevel, _ = cfg.TraceLevel()
	s.maxDiagnostics = cfg.Compile.MaxDiagnostics
	s.jobs = cfg.Compile.Jobs
	s.cache = cfg.Cache.Enabled
	s.traceOutput = cfg.Trace.Output
	return s, nil
}
