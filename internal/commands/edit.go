package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilanco-dev/bilanco/internal/analysis"
	"github.com/bilanco-dev/bilanco/internal/config"
	"github.com/bilanco-dev/bilanco/internal/model"
	"github.com/bilanco-dev/bilanco/internal/numeric"
)

func newEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <sheet> <code> <period> <value>",
		Short: "Change one reported value and re-run the analysis",
		Long: "Change one reported value. Values use the Turkish format\n" +
			"(1.234,56); \"-\" clears the value.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, period, raw := args[1], args[2], args[3]
			if _, err := numeric.Parse(raw); err != nil {
				return err
			}
			if !numeric.IsPresent(raw) {
				raw = model.NoData
			}

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
			if err := w.store.SetValue(ctx, id, code, period, raw); err != nil {
				return err
			}

			sheet, err := w.store.Sheet(ctx, id)
			if err != nil {
				return err
			}
			opts, err := w.analysisOptions(config.ToleranceDetail)
			if err != nil {
				return err
			}
			opts.ShowEmptyRows = false
			res, err := analysis.Analyze(sheet, opts)
			if err != nil {
				return err
			}
			w.record(cmd.ErrOrStderr(), id, res.Diagnostics)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Set %s %s = %s on %s\n", code, period, raw, shortID(id))
			if r, ok := res.Reconciliation.Period(period); ok {
				fmt.Fprintln(out, r.String())
			}
			return nil
		},
	}
}
