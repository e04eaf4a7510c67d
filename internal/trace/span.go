package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next event sequence number; numbering is shared by
// every tracer in the process.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span ID. Zero is never returned.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// accepts reports whether t records events of scope.
func accepts(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is an open begin/end pair. A Span whose scope is filtered out is
// inert: End only measures time and ID is 0.
type Span struct {
	tracer Tracer
	begin  Event
	extra  map[string]string
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	s := &Span{begin: Event{Time: time.Now(), Kind: KindSpanBegin, Scope: scope, ParentID: parent, Name: name}}
	if !accepts(t, scope) {
		return s
	}
	s.tracer = t
	s.begin.SpanID = NextSpanID()
	ev := s.begin
	t.Emit(&ev)
	return s
}

// End emits the end event carrying detail and any extras, and returns the
// time since Begin.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	elapsed := time.Since(s.begin.Time)
	if s.tracer == nil {
		return elapsed
	}
	ev := s.begin
	ev.Time = time.Now()
	ev.Kind = KindSpanEnd
	ev.Detail = detail
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return elapsed
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for inert spans.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.begin.SpanID
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !accepts(t, scope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, ParentID: parent, Name: name, Detail: detail})
}
