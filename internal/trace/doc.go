// Package trace records what the clukc compiler is doing.
//
// Tracing is off by default. Enable it from the command line:
//
//	clukc compile --trace=- --trace-level=detail prog.ck
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only crash dumps from the ring buffer
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-unit events
//   - LevelDebug: everything, including scope push/pop and declarations
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", parentID)
//	defer span.End("")
package trace
