package driver

import (
	"fmt"

	"fortio.org/safecast"

	"clukc/internal/parser"
)

// Options configures a compilation.
type Options struct {
	MaxDiagnostics int // per unit; <= 0 means the bag default
	Redeclare      parser.RedeclarePolicy
	Jobs           int        // CompileDir parallelism; <= 0 means GOMAXPROCS
	Cache          *DiskCache // nil disables caching
	Progress       ProgressSink
}

func (o Options) maxErrors() uint {
	if o.MaxDiagnostics <= 0 {
		return 0
	}
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	return n
}
