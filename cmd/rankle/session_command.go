package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSessionCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage persisted game sessions",
	}
	cmd.AddCommand(newSessionStartCommand(ctx))
	cmd.AddCommand(newSessionPlaceCommand(ctx))
	cmd.AddCommand(newSessionShowCommand(ctx))
	cmd.AddCommand(newSessionListCommand(ctx))
	return cmd
}

func newSessionStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start <topic>",
		Short: "Start a session for a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			record, err := store.NewSession(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), record.ID)
			return nil
		},
	}
}

func newSessionPlaceCommand(ctx *commandContext) *cobra.Command {
	var imageURL string

	cmd := &cobra.Command{
		Use:   "place <session-id> <rank> <label>",
		Short: "Record a label at a rank slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rank, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse rank %q: %w", args[1], err)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Place(cmd.Context(), args[0], rank, args[2], imageURL); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "placed %q at rank %d\n", args[2], rank)
			return nil
		},
	}
	cmd.Flags().StringVar(&imageURL, "image-url", "", "Resolved image URL for the placement")
	return cmd
}

func newSessionShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <session-id>",
		Short: "Show a session's placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			placements, err := store.Placements(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(placements) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no placements recorded")
				return nil
			}

			rows := make([][]string, 0, len(placements))
			for _, p := range placements {
				rows = append(rows, []string{strconv.Itoa(p.Rank), p.Label, p.ImageURL})
			}
			headers := []string{"Rank", "Label", "Image"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft}
			if stdoutIsTerminal() {
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			} else {
				for _, row := range rows {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", row[0], row[1], row[2])
				}
			}
			return nil
		},
	}
}

func newSessionListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Sessions(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no sessions stored")
				return nil
			}
			for _, record := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					record.ID, record.Topic, record.StartedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
