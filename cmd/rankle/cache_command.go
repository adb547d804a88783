package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the resolved image cache",
	}
	cmd.AddCommand(newCacheListCommand(ctx))
	cmd.AddCommand(newCacheClearCommand(ctx))
	cmd.AddCommand(newCachePathCommand(ctx))
	return cmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached resolutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}

			keys := cache.Keys()
			sort.Strings(keys)
			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				entry, ok := cache.Get(key)
				if !ok {
					continue
				}
				rows = append(rows, []string{key, entry.Main, yesNo(entry.IsLogo)})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "cache is empty")
				return nil
			}
			if stdoutIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Main Image", "Logo"}, rows, nil))
			} else {
				for _, row := range rows {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", row[0], row[1], row[2])
				}
			}
			return nil
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached resolutions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}
			count := cache.Len()
			if err := cache.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d cached entries\n", count)
			return nil
		},
	}
}

func newCachePathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Paths.CachePath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "cache is memory-only (no cache_path configured)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cfg.Paths.CachePath)
			return nil
		},
	}
}
