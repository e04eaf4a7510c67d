package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clukc/internal/trace"
)

// setupTracing attaches a tracer built from s to the command context.
// The returned cleanup flushes and closes it.
func setupTracing(cmd *cobra.Command, s settings) (func(), error) {
	if s.traceLevel == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	tracer, err := trace.New(trace.Config{
		Level:      s.traceLevel,
		Mode:       s.traceMode,
		OutputPath: s.traceOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	cleanup := func() {
		if ring := ringOf(tracer); ring != nil {
			if err := ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
			}
		}
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}

// ringOf returns the in-memory buffer of a ring-only tracer, which has no
// other output.
func ringOf(t trace.Tracer) *trace.RingTracer {
	if ring, ok := t.(*trace.RingTracer); ok {
		return ring
	}
	return nil
}
