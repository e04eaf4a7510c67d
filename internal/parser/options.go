package parser

import (
	"fmt"
	"strings"

	"clukc/internal/diag"
)

// RedeclarePolicy decides what a second declaration of a name in the same
// scope means. The binding is always replaced; the policy only controls the
// diagnostic.
type RedeclarePolicy uint8

const (
	RedeclareAllow RedeclarePolicy = iota // silent
	RedeclareWarn                         // SemaRedeclared warning
	RedeclareError                        // SemaRedeclared error
)

func (p RedeclarePolicy) String() string {
	switch p {
	case RedeclareAllow:
		return "allow"
	case RedeclareWarn:
		return "warn"
	case RedeclareError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseRedeclarePolicy converts a config or flag value.
func ParseRedeclarePolicy(s string) (RedeclarePolicy, error) {
	switch strings.ToLower(s) {
	case "", "allow":
		return RedeclareAllow, nil
	case "warn":
		return RedeclareWarn, nil
	case "error":
		return RedeclareError, nil
	default:
		return RedeclareAllow, fmt.Errorf("invalid redeclare policy: %q (expected: allow|warn|error)", s)
	}
}

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
	Redeclare     RedeclarePolicy
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}
