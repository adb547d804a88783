package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rankle/internal/render"
	"rankle/internal/resolver"
	"rankle/internal/topics"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var topicFlag string
	var providerFlag string
	var mediaTypeFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "resolve <label>",
		Short: "Resolve the display image for one label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cache, err := ctx.openCache()
			if err != nil {
				return err
			}

			topic, err := resolveTopic(ctx, topicFlag, providerFlag, mediaTypeFlag)
			if err != nil {
				return err
			}

			res := resolver.New(cfg, cache, logger)
			img, err := res.Resolve(cmd.Context(), topic, topics.Item{Label: args[0]}, nil)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", args[0], err)
			}

			if jsonFlag {
				payload := map[string]any{
					"label":        args[0],
					"topic":        topic.Name,
					"main":         img.Main,
					"thumb":        img.Thumb,
					"is_logo":      img.IsLogo,
					"prefers_face": img.PrefersFace,
					"fit":          render.Mode(img.IsLogo).String(),
				}
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(payload)
			}

			rows := [][]string{
				{"Main", img.Main},
				{"Thumb", img.Thumb},
				{"Fit", render.Mode(img.IsLogo).String()},
				{"Face crop", yesNo(render.FaceCrop(img.PrefersFace))},
			}
			if stdoutIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, nil))
			} else {
				for _, row := range rows {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", row[0], row[1])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&topicFlag, "topic", "", "Topic name providing classification context")
	cmd.Flags().StringVar(&providerFlag, "provider", "", "Provider hint (tmdb, wiki, static)")
	cmd.Flags().StringVar(&mediaTypeFlag, "media-type", "", "Media type hint for tmdb (movie, tv, person)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit JSON instead of a table")
	return cmd
}

// resolveTopic finds the named topic in the configured pack, or synthesizes
// one from the flags when the name is unknown or absent.
func resolveTopic(ctx *commandContext, name, provider, mediaType string) (topics.Topic, error) {
	topic := topics.Topic{Name: name, Provider: provider, MediaType: mediaType}

	if name != "" {
		pack, err := ctx.loadTopics()
		if err != nil {
			return topics.Topic{}, err
		}
		for _, t := range pack {
			if strings.EqualFold(t.Name, name) {
				topic = t
				break
			}
		}
	}
	if provider != "" {
		topic.Provider = provider
	}
	if mediaType != "" {
		topic.MediaType = mediaType
	}
	return topic, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
