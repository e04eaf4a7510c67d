package symbols

import "clukc/internal/source"

// scope is one level of the stack. Redeclaring a name appends a new entry and
// repoints names; the old entry stays addressable through its handle.
type scope struct {
	gen     uint32
	names   map[source.StringID]uint32
	symbols []symbolEntry
}

func newScope(gen uint32, capacity int) scope {
	return scope{
		gen:     gen,
		names:   make(map[source.StringID]uint32, capacity),
		symbols: make([]symbolEntry, 0, capacity),
	}
}

func (s *scope) find(name source.StringID) (uint32, bool) {
	slot, ok := s.names[name]
	return slot, ok
}
