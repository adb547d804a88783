package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rankle/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to set api keys (or export TMDB_API_KEY and friends) before resolving.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"cache_path", cfg.Paths.CachePath},
				{"session_db", cfg.Paths.SessionDB},
				{"topics_path", valueOr(cfg.Paths.TopicsPath, "(embedded default pack)")},
				{"log_dir", cfg.Paths.LogDir},
				{"tmdb", keyStatus(cfg.TMDB.APIKey)},
				{"omdb", keyStatus(cfg.OMDb.APIKey)},
				{"lastfm", keyStatus(cfg.LastFM.APIKey)},
				{"audiodb", keyStatus(cfg.AudioDB.APIKey)},
				{"pixabay", keyStatus(cfg.Pixabay.APIKey)},
				{"unsplash", keyStatus(cfg.Unsplash.AccessKey)},
				{"pexels", keyStatus(cfg.Pexels.APIKey)},
				{"tvmaze", enabledStatus(cfg.Providers.EnableTVMaze)},
				{"wikipedia", enabledStatus(cfg.Providers.EnableWikipedia)},
				{"wikidata", enabledStatus(cfg.Providers.EnableWikidata)},
				{"itunes", enabledStatus(cfg.Providers.EnableITunes)},
				{"request_timeout", fmt.Sprintf("%ds", cfg.Resolver.RequestTimeoutSeconds)},
				{"short_query_score", fmt.Sprintf("%.2f", cfg.Resolver.ShortQueryScore)},
				{"long_query_score", fmt.Sprintf("%.2f", cfg.Resolver.LongQueryScore)},
				{"log_format", cfg.Logging.Format},
				{"log_level", cfg.Logging.Level},
			}
			if stdoutIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, nil))
			} else {
				for _, row := range rows {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", row[0], row[1])
				}
			}
			return nil
		},
	}
}

func keyStatus(key string) string {
	if strings.TrimSpace(key) == "" {
		return "no key (disabled)"
	}
	return "configured"
}

func enabledStatus(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
