package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bilanco-dev/bilanco/internal/analysis"
	"github.com/bilanco-dev/bilanco/internal/config"
)

// ErrUnbalanced is returned by the reconcile command when any period fails.
var ErrUnbalanced = errors.New("balance sheet does not balance")

func newReconcileCommand() *cobra.Command {
	var tolerance string

	cmd := &cobra.Command{
		Use:   "reconcile <sheet>",
		Short: "Check that assets equal liabilities plus equity for every period",
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
			opts, err := w.analysisOptions(tolerance)
			if err != nil {
				return err
			}
			res, err := analysis.Analyze(sheet, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sheet %s, tolerance %s (%s)\n", shortID(sheet.ID), opts.Tolerance.StringFixed(2), tolerance)
			for _, r := range res.Reconciliation.Results {
				fmt.Fprintln(out, r.String())
			}
			if n := len(res.Discrepancies); n > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d parent totals differ from their children\n", n)
			}

			if bad := res.Reconciliation.Unbalanced(); len(bad) > 0 {
				return fmt.Errorf("%w in %d of %d periods", ErrUnbalanced, len(bad), len(res.Reconciliation.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tolerance, "tolerance", config.ToleranceDetail, "named tolerance from bilanco.yaml (summary or detail)")

	return cmd
}
