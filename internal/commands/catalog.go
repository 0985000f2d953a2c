package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bilanco-dev/bilanco/internal/accounts"
	"github.com/bilanco-dev/bilanco/internal/code"
	"github.com/bilanco-dev/bilanco/internal/model"
)

func newCatalogCommand() *cobra.Command {
	var side string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List the chart of accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			entries := w.catalog.All()
			switch side {
			case "":
			case string(model.SideAsset), string(model.SideLiabilityEquity):
				entries = w.catalog.BySide(model.Side(side))
			default:
				return fmt.Errorf("unknown side %q", side)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KOD\tHESAP\tDEFTER")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s%s\t%s\t%s\n", indent(e.Code), e.Code, e.Name, e.LedgerCode)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&side, "side", "", "only one side: asset or liability-equity")
	cmd.AddCommand(newCatalogCheckCommand())

	return cmd
}

func newCatalogCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <sheet>",
		Short: "Compare a sheet's codes with the chart of accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			sheet, err := w.sheet(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			unknown := 0
			for _, it := range sheet.Items {
				if it.Uncoded() || w.catalog.Exists(it.Code) {
					continue
				}
				unknown++
				fmt.Fprintf(out, "not in catalog: %s %s\n", it.Code, it.DisplayName)
			}

			missing := 0
			for _, s := range []model.Side{model.SideAsset, model.SideLiabilityEquity} {
				_, found := accounts.DensifyReport(sheet.Items, w.catalog.All(), s)
				missing += len(found)
			}
			fmt.Fprintf(out, "%d codes not in catalog, %d catalog accounts not reported\n", unknown, missing)
			return nil
		},
	}
}

func indent(c string) string {
	d := code.Depth(c)
	if d <= 1 {
		return ""
	}
	return fmt.Sprintf("%*s", 2*(d-1), "")
}
