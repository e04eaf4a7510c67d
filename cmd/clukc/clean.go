package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clukc/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the compilation cache",
	Long:  "Remove every cached unit stored under $XDG_CACHE_HOME/clukc.",
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cache, err := driver.OpenDiskCache("clukc")
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	if err := cache.DropAll(); err != nil {
		return fmt.Errorf("failed to remove %q: %w", cache.Dir(), err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if !quiet {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", cache.Dir())
	}
	return nil
}
