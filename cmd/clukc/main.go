package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"clukc/internal/version"
)

// errHadErrors signals that diagnostics were already printed and the
// process should exit with status 1 without further output.
var errHadErrors = errors.New("compilation failed")

var rootCmd = &cobra.Command{
	Use:           "clukc",
	Short:         "Toy compiler translating clukc sources to three-address code",
	Long:          `clukc resolves names through nested scopes and prints three-address code for each source file`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version()

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)

	registerRootFlags(rootCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !errors.Is(err, errHadErrors) {
			fmt.Fprintf(os.Stderr, "clukc: %v\n", err)
		}
		os.Exit(1)
	}
}

func registerRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	cmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // Fd fits in int on supported platforms
}

// useColor resolves --color for output written to f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
}
