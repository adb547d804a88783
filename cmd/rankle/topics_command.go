package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newTopicsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "List the configured topic packs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pack, err := ctx.loadTopics()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(pack))
			for _, topic := range pack {
				rows = append(rows, []string{
					topic.Name,
					topic.Provider,
					topic.MediaType,
					strconv.Itoa(len(topic.Items)),
				})
			}
			headers := []string{"Topic", "Provider", "Media Type", "Items"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}
			if stdoutIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			} else {
				for _, row := range rows {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", row[0], row[1], row[2], row[3])
				}
			}
			return nil
		},
	}
}
