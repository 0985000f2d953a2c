package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilanco-dev/bilanco/internal/model"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "bilanco.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSheet() model.BalanceSheet {
	return model.BalanceSheet{
		Company:      "Örnek A.Ş.",
		ReportedYear: 2024,
		PeriodLabel:  "12/2024",
		Periods:      []string{"2023", "2024"},
		Items: []model.LineItem{
			{Code: "A.1.1.1", DisplayName: "KASA", Source: model.SourceExtracted,
				PeriodValues: map[string]string{"2023": "100.000,00", "2024": "125.000,00"}},
			{Code: "P.3.1.1", DisplayName: "SERMAYE", Source: model.SourceExtracted,
				PeriodValues: map[string]string{"2023": "100.000,00", "2024": "-"}},
			{Code: model.UnmatchedCode, DisplayName: "DİĞER", Source: model.SourceExtracted,
				PeriodValues: map[string]string{"2024": "1,00"}},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	sheet := sampleSheet()
	require.NoError(t, s.SaveSheet(ctx, &sheet))
	_, err := uuid.Parse(sheet.ID)
	require.NoError(t, err, "new sheets get a UUID")
	assert.False(t, sheet.CreatedAt.IsZero())

	got, err := s.Sheet(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, sheet.ID, got.ID)
	assert.Equal(t, sheet.Company, got.Company)
	assert.Equal(t, 2024, got.ReportedYear)
	assert.Equal(t, "12/2024", got.PeriodLabel)
	assert.Equal(t, sheet.Periods, got.Periods)
	assert.Equal(t, sheet.Items, got.Items)
	assert.True(t, sheet.CreatedAt.Equal(got.CreatedAt))
}

func TestSaveSheet_Replaces(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	sheet := sampleSheet()
	require.NoError(t, s.SaveSheet(ctx, &sheet))

	sheet.Items = sheet.Items[:1]
	sheet.Periods = []string{"2024"}
	require.NoError(t, s.SaveSheet(ctx, &sheet))

	got, err := s.Sheet(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, []string{"2024"}, got.Periods)

	list, err := s.ListSheets(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSheet_NotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.Sheet(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListSheets(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	old := sampleSheet()
	old.ReportedYear = 2023
	old.Periods = []string{"2022", "2023"}
	require.NoError(t, s.SaveSheet(ctx, &old))

	cur := sampleSheet()
	require.NoError(t, s.SaveSheet(ctx, &cur))

	list, err := s.ListSheets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, cur.ID, list[0].ID, "newest reported year first")
	assert.Equal(t, 3, list[0].ItemCount)
	assert.Equal(t, []string{"2022", "2023"}, list[1].Periods)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	a := sampleSheet()
	a.ID = "abc11111"
	b := sampleSheet()
	b.ID = "abc22222"
	require.NoError(t, s.SaveSheet(ctx, &a))
	require.NoError(t, s.SaveSheet(ctx, &b))

	id, err := s.Resolve(ctx, "abc1")
	require.NoError(t, err)
	assert.Equal(t, "abc11111", id)

	id, err = s.Resolve(ctx, "abc22222")
	require.NoError(t, err)
	assert.Equal(t, "abc22222", id)

	_, err = s.Resolve(ctx, "abc")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = s.Resolve(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Resolve(ctx, "a_c")
	assert.ErrorIs(t, err, ErrNotFound, "LIKE wildcards are literal")
}

func TestDeleteSheet(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	sheet := sampleSheet()
	require.NoError(t, s.SaveSheet(ctx, &sheet))
	require.NoError(t, s.DeleteSheet(ctx, sheet.ID))

	_, err := s.Sheet(ctx, sheet.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteSheet(ctx, sheet.ID), ErrNotFound)

	var n int
	require.NoError(t, s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM item_values`).Scan(&n))
	assert.Zero(t, n, "values cascade with the sheet")
}

func TestSetValue(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	sheet := sampleSheet()
	sheet.CreatedAt = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveSheet(ctx, &sheet))

	require.NoError(t, s.SetValue(ctx, sheet.ID, "P.3.1.1", "2024", "125.000,00"))
	require.NoError(t, s.SetValue(ctx, sheet.ID, "A.1.1.1", "2023", "90.000,00"))

	got, err := s.Sheet(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, "125.000,00", got.Items[1].PeriodValues["2024"])
	assert.Equal(t, "90.000,00", got.Items[0].PeriodValues["2023"])
	assert.True(t, sheet.CreatedAt.Equal(got.CreatedAt))

	assert.ErrorIs(t, s.SetValue(ctx, sheet.ID, "A.9", "2024", "1"), ErrNotFound)
	assert.ErrorIs(t, s.SetValue(ctx, sheet.ID, "A.1.1.1", "2030", "1"), ErrNotFound)
}

func TestSetValue_AddsMissingPeriod(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	sheet := sampleSheet()
	require.NoError(t, s.SaveSheet(ctx, &sheet))
	require.NoError(t, s.SetValue(ctx, sheet.ID, model.UnmatchedCode, "2023", "3,00"))

	got, err := s.Sheet(ctx, sheet.ID)
	require.NoError(t, err)
	assert.Equal(t, "3,00", got.Items[2].PeriodValues["2023"])
}
