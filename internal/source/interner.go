package source

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// StringID identifies an interned string.
type StringID uint32

// NoStringID is the id of the empty string.
const NoStringID StringID = 0

// Interner deduplicates identifier text. Strings are stored in Unicode NFC so
// canonically-equivalent spellings share one id.
type Interner struct {
	byID  []string
	index map[string]StringID
}

func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]StringID{"": NoStringID},
	}
}

// Intern returns the id of s, inserting it when new.
func (i *Interner) Intern(s string) StringID {
	s = norm.NFC.String(s)
	if id, ok := i.index[s]; ok {
		return id
	}

	n, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	cpy := string([]byte(s))
	id := StringID(n)
	i.byID = append(i.byID, cpy)
	i.index[cpy] = id
	return id
}

// Find returns the id of s without inserting it.
func (i *Interner) Find(s string) (StringID, bool) {
	id, ok := i.index[norm.NFC.String(s)]
	return id, ok
}

// Lookup returns the string for id.
func (i *Interner) Lookup(id StringID) (string, bool) {
	if !i.Has(id) {
		return "", false
	}
	return i.byID[id], true
}

// MustLookup is Lookup that panics on an unknown id.
func (i *Interner) MustLookup(id StringID) string {
	s, ok := i.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("invalid string ID %d", id))
	}
	return s
}

// Has reports whether id was issued by this interner.
func (i *Interner) Has(id StringID) bool {
	return int(id) < len(i.byID)
}

// Len counts stored strings, NoStringID included.
func (i *Interner) Len() int {
	return len(i.byID)
}

// Snapshot returns a copy of all strings indexed by id.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
