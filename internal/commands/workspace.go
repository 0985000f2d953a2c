package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/bilanco-dev/bilanco/internal/accounts"
	"github.com/bilanco-dev/bilanco/internal/analysis"
	"github.com/bilanco-dev/bilanco/internal/config"
	"github.com/bilanco-dev/bilanco/internal/diag"
	"github.com/bilanco-dev/bilanco/internal/model"
	"github.com/bilanco-dev/bilanco/internal/store"
)

// workspace is an initialized bilanco directory with its config, catalog
// and sheet database open.
type workspace struct {
	root    string
	cfg     *config.Config
	catalog *accounts.Service
	store   *store.Store
}

func workspaceDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	root, err := workspaceDir(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s is not a bilanco workspace (run bilanco init)", root)
	}
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid %s: %w", config.FileName, errors.Join(errs...))
	}

	catalog, err := accounts.Load(filepath.Join(root, cfg.Catalog.Path))
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cmd.Context(), filepath.Join(root, cfg.Storage.Database))
	if err != nil {
		return nil, err
	}

	return &workspace{root: root, cfg: cfg, catalog: catalog, store: st}, nil
}

func (w *workspace) Close() error {
	return w.store.Close()
}

// sheet loads a sheet by full ID or unique prefix.
func (w *workspace) sheet(ctx context.Context, idOrPrefix string) (model.BalanceSheet, error) {
	id, err := w.store.Resolve(ctx, idOrPrefix)
	if err != nil {
		return model.BalanceSheet{}, err
	}
	return w.store.Sheet(ctx, id)
}

// analysisOptions builds analysis options from the config, using the named
// tolerance.
func (w *workspace) analysisOptions(tolerance string) (analysis.Options, error) {
	tol, err := w.cfg.Tolerance(tolerance)
	if err != nil {
		return analysis.Options{}, err
	}
	return analysis.Options{
		Catalog:        w.catalog.All(),
		ShowEmptyRows:  w.cfg.Display.ShowEmptyRows,
		PreferReported: w.cfg.Aggregation.PreferReported,
		Tolerance:      tol,
	}, nil
}

// record appends diagnostics to the workspace log and warns about the ones
// that need attention.
func (w *workspace) record(errOut io.Writer, sheetID string, l diag.List) {
	for _, d := range l.Errors() {
		fmt.Fprintf(errOut, "warning: %s\n", d)
	}
	if err := diag.Append(w.root, diag.Entries(sheetID, time.Now().UTC(), l)); err != nil {
		fmt.Fprintf(errOut, "warning: failed to write diagnostics log: %v\n", err)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
