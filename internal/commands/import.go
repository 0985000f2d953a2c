package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bilanco-dev/bilanco/internal/analysis"
	"github.com/bilanco-dev/bilanco/internal/config"
	"github.com/bilanco-dev/bilanco/internal/importer"
	"github.com/bilanco-dev/bilanco/internal/model"
)

type importFlags struct {
	format  string
	company string
	year    int
	label   string
}

func newImportCommand() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import balance sheets",
		Long: "Import balance sheets from CSV or JSON files. With no arguments, every\n" +
			"file in import/ is imported and moved to import/processed/.",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := openWorkspace(cmd)
			if err != nil {
				return err
			}
			defer w.Close()

			if len(args) > 0 {
				for _, path := range args {
					if err := importFile(cmd, w, path, flags); err != nil {
						return err
					}
				}
				return nil
			}

			files, err := importer.Scan(w.root)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}
			for _, f := range files {
				if err := importFile(cmd, w, f.Path, flags); err != nil {
					return err
				}
				if err := importer.MarkProcessed(w.root, f.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "parser format (csv, csv-1254, json); default from file extension")
	cmd.Flags().StringVar(&flags.company, "company", "", "company name")
	cmd.Flags().IntVar(&flags.year, "year", 0, "reported year; default is the latest period year")
	cmd.Flags().StringVar(&flags.label, "label", "", "period label, e.g. 12/2024")

	return cmd
}

func importFile(cmd *cobra.Command, w *workspace, path string, flags importFlags) error {
	format := flags.format
	if format == "" {
		var err error
		if format, err = importer.FormatFor(path, w.cfg.Import.Encoding); err != nil {
			return err
		}
	}
	sheet, err := importer.DefaultRegistry().ParseFile(path, format)
	if err != nil {
		return err
	}
	applyImportFlags(&sheet, flags, w.cfg.Workspace.Name)

	ctx := cmd.Context()
	if err := w.store.SaveSheet(ctx, &sheet); err != nil {
		return err
	}

	opts, err := w.analysisOptions(config.ToleranceDetail)
	if err != nil {
		return err
	}
	opts.ShowEmptyRows = false // catalog coverage is reported by "catalog check"
	res, err := analysis.Analyze(sheet, opts)
	if err != nil {
		return err
	}
	w.record(cmd.ErrOrStderr(), sheet.ID, res.Diagnostics)

	status := "balanced"
	if !res.Reconciliation.Balanced() {
		status = "UNBALANCED"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as %s (%d items, periods %s, %s)\n",
		filepath.Base(path), shortID(sheet.ID), len(sheet.Items), strings.Join(sheet.Periods, " "), status)
	return nil
}

func applyImportFlags(sheet *model.BalanceSheet, flags importFlags, workspaceName string) {
	if flags.company != "" {
		sheet.Company = flags.company
	}
	if sheet.Company == "" {
		sheet.Company = workspaceName
	}
	if flags.label != "" {
		sheet.PeriodLabel = flags.label
	}
	if flags.year != 0 {
		sheet.ReportedYear = flags.year
	}
	if sheet.ReportedYear == 0 {
		for _, p := range sheet.Periods {
			if y, _, ok := model.PeriodYear(p); ok && y > sheet.ReportedYear {
				sheet.ReportedYear = y
			}
		}
	}
	if sheet.PeriodLabel == "" && sheet.ReportedYear != 0 {
		sheet.PeriodLabel = fmt.Sprintf("12/%d", sheet.ReportedYear)
	}
}
