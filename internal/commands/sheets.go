package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSheetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "List stored balance sheets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			list, err := w.store.ListSheets(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sheets. Import one with bilanco import.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCOMPANY\tYEAR\tLABEL\tPERIODS\tITEMS\tIMPORTED")
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%d\t%s\n",
					shortID(s.ID), s.Company, s.ReportedYear, s.PeriodLabel,
					strings.Join(s.Periods, " "), s.ItemCount, s.CreatedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(newSheetsRemoveCommand())
	return cmd
}

func newSheetsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <sheet>",
		Short: "Delete a stored sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx := cmd.Context()
			id, err := w.store.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if err := w.store.DeleteSheet(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
			return nil
		},
	}
}
