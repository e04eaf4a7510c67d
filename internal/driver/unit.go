package driver

import (
	"clukc/internal/diag"
	"clukc/internal/source"
)

// Stats summarises the operands one unit created.
type Stats struct {
	Temps        uint64 // temporaries issued, declarations included
	Addresses    int    // every operand in the arena
	MaxDepth     int    // deepest scope nesting, the global scope counts as 1
	Instructions int
}

// Global describes one binding left in the global scope.
type Global struct {
	Name     string
	Type     string
	Location string
}

// Unit is the result of compiling one file.
type Unit struct {
	Path    string
	FileID  source.FileID
	Code    string
	Bag     *diag.Bag
	Stats   Stats
	Globals []Global
	Cached  bool
}

// HasErrors reports whether the unit must not be used.
func (u *Unit) HasErrors() bool {
	return u != nil && u.Bag != nil && u.Bag.HasErrors()
}
