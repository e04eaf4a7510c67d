package version

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/fatih/color"
)

// Build metadata. Override at build time via -ldflags "-X".
var (
	Major = "0"
	Minor = "1"
	Patch = "0"
	Pre   = "dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Version returns the plain semantic version.
func Version() string {
	v := Major + "." + Minor + "." + Patch
	if Pre != "" {
		v += "-" + Pre
	}
	return v
}

// Colored renders the version with each component coloured. fatih/color
// drops the escapes when output is not a terminal or NO_COLOR is set.
func Colored() string {
	v := majorColor.Sprint(Major) + "." + minorColor.Sprint(Minor) + "." + patchColor.Sprint(Patch)
	if Pre != "" {
		v += "-" + Pre
	}
	return v
}

// Describe returns the multi-line text printed by `clukc version`.
func Describe(colored bool) string {
	v := Version()
	if colored {
		v = Colored()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "clukc %s\n", v)
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", BuildDate)
	}
	fmt.Fprintf(&b, "go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return b.String()
}
