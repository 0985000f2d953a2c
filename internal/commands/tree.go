package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bilanco-dev/bilanco/internal/analysis"
	"github.com/bilanco-dev/bilanco/internal/config"
	"github.com/bilanco-dev/bilanco/internal/hierarchy"
	"github.com/bilanco-dev/bilanco/internal/model"
	"github.com/bilanco-dev/bilanco/internal/numeric"
)

func newTreeCommand() *cobra.Command {
	var showEmpty, preferReported bool

	cmd := &cobra.Command{
		Use:   "tree <sheet>",
		Short: "Show a sheet as an account hierarchy with computed totals",
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
			opts, err := w.analysisOptions(config.ToleranceDetail)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("empty") {
				opts.ShowEmptyRows = showEmpty
			}
			if cmd.Flags().Changed("prefer-reported") {
				opts.PreferReported = preferReported
			}

			res, err := analysis.Analyze(sheet, opts)
			if err != nil {
				return err
			}
			return printTree(cmd.OutOrStdout(), sheet, res)
		},
	}

	cmd.Flags().BoolVar(&showEmpty, "empty", false, "include catalog accounts the sheet does not report")
	cmd.Flags().BoolVar(&preferReported, "prefer-reported", false, "keep reported parent totals instead of children sums")

	return cmd
}

func printTree(out io.Writer, sheet model.BalanceSheet, res *analysis.Result) error {
	fmt.Fprintf(out, "%s (%s, sheet %s)\n", sheet.Company, sheet.PeriodLabel, shortID(sheet.ID))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := "KOD\tHESAP\t" + strings.Join(res.Periods, "\t") + "\t"

	sections := []struct {
		title string
		roots []*hierarchy.Node
	}{
		{"AKTİF (VARLIKLAR)", res.Assets},
		{"PASİF (KAYNAKLAR)", res.Liabilities},
	}
	for _, s := range sections {
		fmt.Fprintf(tw, "\n%s\t\t%s\n", s.title, strings.Repeat("\t", len(res.Periods)))
		fmt.Fprintln(tw, header)
		hierarchy.WalkForest(s.roots, func(n *hierarchy.Node, depth int) {
			cells := make([]string, len(res.Periods))
			for i, p := range res.Periods {
				cells[i] = nodeCell(n, p)
			}
			fmt.Fprintf(tw, "%s%s\t%s\t%s\t\n",
				strings.Repeat("  ", depth), n.Item.Code, n.Item.DisplayName, strings.Join(cells, "\t"))
		})
	}

	if len(res.Unplaced) > 0 {
		fmt.Fprintf(tw, "\nEŞLEŞMEYEN\t\t%s\n", strings.Repeat("\t", len(res.Periods)))
		for _, it := range res.Unplaced {
			cells := make([]string, len(res.Periods))
			for i, p := range res.Periods {
				cells[i] = it.Raw(p)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t\n", it.Code, it.DisplayName, strings.Join(cells, "\t"))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	for _, r := range res.Reconciliation.Results {
		fmt.Fprintln(out, r.String())
	}
	return nil
}

// nodeCell formats a node value; computed totals are marked with '*'.
func nodeCell(n *hierarchy.Node, period string) string {
	v, ok := n.Value(period)
	if !ok {
		return model.NoData
	}
	s := numeric.Format(v)
	if n.IsComputed(period) {
		s += "*"
	}
	return s
}
