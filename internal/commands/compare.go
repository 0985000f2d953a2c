package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bilanco-dev/bilanco/internal/compare"
	"github.com/bilanco-dev/bilanco/internal/config"
	"github.com/bilanco-dev/bilanco/internal/hierarchy"
	"github.com/bilanco-dev/bilanco/internal/model"
	"github.com/bilanco-dev/bilanco/internal/numeric"
)

func newCompareCommand() *cobra.Command {
	var csvPath, xlsxPath, strategy string

	cmd := &cobra.Command{
		Use:   "compare <sheet> <sheet>...",
		Short: "Line up sheets side by side, one column per sheet period",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			ctx := cmd.Context()
			var sels []compare.Selection
			for _, arg := range args {
				sheet, err := w.sheet(ctx, arg)
				if err != nil {
					return err
				}
				sels = append(sels, compare.FromSheet(sheet))
			}

			if strategy == "" {
				strategy = w.cfg.Matching.Strategy
			}
			m, err := matcher(strategy, w.cfg.Matching.MinSimilarity)
			if err != nil {
				return err
			}

			opts := []compare.Option{compare.WithMatcher(m)}
			if w.cfg.Aggregation.PreferReported {
				opts = append(opts, compare.WithAggregation(hierarchy.PreferReported()))
			}
			a := compare.Align(sels, opts...)
			// Details name the sheet; the log entry itself belongs to no single sheet.
			w.record(cmd.ErrOrStderr(), "", a.Diagnostics)

			if csvPath != "" {
				if err := writeFile(csvPath, func(f io.Writer) error { return compare.WriteCSV(f, a) }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", csvPath)
			}
			if xlsxPath != "" {
				if err := writeFile(xlsxPath, func(f io.Writer) error { return compare.WriteXLSX(f, a) }); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", xlsxPath)
			}
			if csvPath == "" && xlsxPath == "" {
				return printAlignment(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "write the comparison as CSV to this file")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "write the comparison as an Excel workbook to this file")
	cmd.Flags().StringVar(&strategy, "strategy", "", "matching for uncoded rows: name or exact (default from bilanco.yaml)")

	return cmd
}

func matcher(strategy string, minSimilarity float64) (compare.Matcher, error) {
	switch strategy {
	case config.StrategyExact:
		return compare.ExactCode{}, nil
	case config.StrategyName:
		if minSimilarity <= 0 {
			minSimilarity = compare.DefaultMinSimilarity
		}
		return compare.NameMatch{MinSimilarity: minSimilarity}, nil
	}
	return nil, fmt.Errorf("unknown matching strategy %q", strategy)
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func printAlignment(out io.Writer, a compare.Alignment) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	labels := make([]string, len(a.Columns))
	for i, c := range a.Columns {
		labels[i] = c.Label()
	}
	fmt.Fprintf(tw, "KOD\tHESAP\t%s\t\n", strings.Join(labels, "\t"))
	for _, r := range a.Rows {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			cells[i] = model.NoData
			if c.Present {
				cells[i] = numeric.Format(c.Value)
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", r.Code, r.Name, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}
