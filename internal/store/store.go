// Package store persists balance sheets in a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/bilanco-dev/bilanco/internal/model"
)

var (
	// ErrNotFound is returned when no sheet or item matches.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when an ID prefix matches more than one sheet.
	ErrAmbiguous = errors.New("ambiguous sheet id")
)

const schema = `
CREATE TABLE IF NOT EXISTS sheets (
	id            TEXT PRIMARY KEY,
	company       TEXT NOT NULL DEFAULT '',
	reported_year INTEGER NOT NULL DEFAULT 0,
	period_label  TEXT NOT NULL DEFAULT '',
	created_at    TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS sheet_periods (
	sheet_id TEXT NOT NULL REFERENCES sheets(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	period   TEXT NOT NULL,
	PRIMARY KEY (sheet_id, position)
);
CREATE TABLE IF NOT EXISTS items (
	sheet_id TEXT NOT NULL REFERENCES sheets(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	code     TEXT NOT NULL,
	name     TEXT NOT NULL,
	source   TEXT NOT NULL,
	PRIMARY KEY (sheet_id, position)
);
CREATE TABLE IF NOT EXISTS item_values (
	sheet_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	period   TEXT NOT NULL,
	raw      TEXT NOT NULL,
	PRIMARY KEY (sheet_id, position, period),
	FOREIGN KEY (sheet_id, position) REFERENCES items(sheet_id, position) ON DELETE CASCADE
);
`

// Store is a sheet database.
type Store struct {
	db *sql.DB
}

// Summary describes a stored sheet without its items.
type Summary struct {
	ID           string
	Company      string
	ReportedYear int
	PeriodLabel  string
	Periods      []string
	ItemCount    int
	CreatedAt    time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SaveSheet stores sheet, replacing any sheet with the same ID. A missing
// ID is filled with a new UUID and a zero CreatedAt with the current time;
// both are written back to sheet.
func (s *Store) SaveSheet(ctx context.Context, sheet *model.BalanceSheet) error {
	if sheet.ID == "" {
		sheet.ID = uuid.NewString()
	}
	if sheet.CreatedAt.IsZero() {
		sheet.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sheets WHERE id = ?`, sheet.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO sheets(id, company, reported_year, period_label, created_at) VALUES (?, ?, ?, ?, ?)`,
			sheet.ID, sheet.Company, sheet.ReportedYear, sheet.PeriodLabel, sheet.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
		for i, p := range sheet.Periods {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO sheet_periods(sheet_id, position, period) VALUES (?, ?, ?)`, sheet.ID, i, p); err != nil {
				return err
			}
		}
		for i, it := range sheet.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items(sheet_id, position, code, name, source) VALUES (?, ?, ?, ?, ?)`,
				sheet.ID, i, it.Code, it.DisplayName, string(it.Source)); err != nil {
				return err
			}
			for p, raw := range it.PeriodValues {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO item_values(sheet_id, position, period, raw) VALUES (?, ?, ?, ?)`,
					sheet.ID, i, p, raw); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving sheet %s: %w", sheet.ID, err)
	}
	return nil
}

// Sheet loads a sheet with its items in their saved order.
func (s *Store) Sheet(ctx context.Context, id string) (model.BalanceSheet, error) {
	var sheet model.BalanceSheet
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company, reported_year, period_label, created_at FROM sheets WHERE id = ?`, id).
		Scan(&sheet.ID, &sheet.Company, &sheet.ReportedYear, &sheet.PeriodLabel, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return model.BalanceSheet{}, fmt.Errorf("sheet %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.BalanceSheet{}, fmt.Errorf("loading sheet %s: %w", id, err)
	}
	if sheet.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return model.BalanceSheet{}, fmt.Errorf("sheet %s created_at %q: %w", id, created, err)
	}

	if sheet.Periods, err = s.periods(ctx, id); err != nil {
		return model.BalanceSheet{}, err
	}
	if sheet.Items, err = s.items(ctx, id); err != nil {
		return model.BalanceSheet{}, err
	}
	return sheet, nil
}

func (s *Store) periods(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT period FROM sheet_periods WHERE sheet_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading periods of %s: %w", id, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) items(ctx context.Context, id string) ([]model.LineItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, code, name, source FROM items WHERE sheet_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("loading items of %s: %w", id, err)
	}
	var out []model.LineItem
	byPos := make(map[int]int)
	for rows.Next() {
		var pos int
		var it model.LineItem
		var source string
		if err := rows.Scan(&pos, &it.Code, &it.DisplayName, &source); err != nil {
			rows.Close()
			return nil, err
		}
		it.Source = model.SourceKind(source)
		it.PeriodValues = make(map[string]string)
		byPos[pos] = len(out)
		out = append(out, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	vals, err := s.db.QueryContext(ctx,
		`SELECT position, period, raw FROM item_values WHERE sheet_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("loading values of %s: %w", id, err)
	}
	defer vals.Close()
	for vals.Next() {
		var pos int
		var period, raw string
		if err := vals.Scan(&pos, &period, &raw); err != nil {
			return nil, err
		}
		if i, ok := byPos[pos]; ok {
			out[i].PeriodValues[period] = raw
		}
	}
	return out, vals.Err()
}

// ListSheets returns summaries of all sheets, newest reported year first.
func (s *Store) ListSheets(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT s.id, s.company, s.reported_year, s.period_label, s.created_at,
	       (SELECT COUNT(*) FROM items i WHERE i.sheet_id = s.id)
	FROM sheets s
	ORDER BY s.reported_year DESC, s.created_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}
	var out []Summary
	for rows.Next() {
		var sum Summary
		var created string
		if err := rows.Scan(&sum.ID, &sum.Company, &sum.ReportedYear, &sum.PeriodLabel, &created, &sum.ItemCount); err != nil {
			rows.Close()
			return nil, err
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("sheet %s created_at %q: %w", sum.ID, created, err)
		}
		out = append(out, sum)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Periods, err = s.periods(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Resolve expands an ID prefix to the full ID of a stored sheet.
func (s *Store) Resolve(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("empty sheet id: %w", ErrNotFound)
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM sheets WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`, escaped+"%")
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", prefix, err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("sheet %s: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	}
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
}

// DeleteSheet removes a sheet and its items.
func (s *Store) DeleteSheet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sheets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting sheet %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("sheet %s: %w", id, ErrNotFound)
	}
	return nil
}

// SetValue records a user edit: the raw value of the first item with code
// in period. period must be one of the sheet's periods.
func (s *Store) SetValue(ctx context.Context, id, code, period, raw string) error {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var n int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sheet_periods WHERE sheet_id = ? AND period = ?`, id, period).Scan(&n); err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("period %s: %w", period, ErrNotFound)
		}

		var pos int
		err := tx.QueryRowContext(ctx,
			`SELECT position FROM items WHERE sheet_id = ? AND code = ? ORDER BY position LIMIT 1`, id, code).Scan(&pos)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("item %s: %w", code, ErrNotFound)
		}
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
		INSERT INTO item_values(sheet_id, position, period, raw) VALUES (?, ?, ?, ?)
		ON CONFLICT(sheet_id, position, period) DO UPDATE SET raw = excluded.raw`,
			id, pos, period, raw)
		return err
	})
	if err != nil {
		return fmt.Errorf("setting %s %s on sheet %s: %w", code, period, id, err)
	}
	return nil
}
