package accounts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilanco-dev/bilanco/internal/code"
	"github.com/bilanco-dev/bilanco/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.NotEmpty(t, catalog)

	seen := make(map[string]bool)
	for _, e := range catalog {
		assert.False(t, seen[e.Code], "duplicate code %s", e.Code)
		seen[e.Code] = true

		side, err := code.Classify(e.Code)
		require.NoError(t, err, "code %s", e.Code)
		assert.Equal(t, side, e.Side, "side of %s", e.Code)
		assert.NotEmpty(t, e.Name, "code %s missing name", e.Code)

		// Every non-group row hangs under a listed group.
		if parent, ok := code.ParentCode(e.Code); ok && code.Depth(parent) > 1 {
			assert.True(t, seen[parent], "parent %s of %s must come first", parent, e.Code)
		}
	}
	assert.True(t, seen["A.1.1.1"], "expected KASA")
	assert.True(t, seen["P.3.1.1"], "expected SERMAYE")
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultCatalog())

	e, ok := svc.Get("A.1.1.1")
	require.True(t, ok)
	assert.Equal(t, "KASA", e.Name)
	assert.Equal(t, "100", e.LedgerCode)

	_, ok = svc.Get(" A.1.1.1 ")
	assert.True(t, ok, "lookups trim the code")

	assert.True(t, svc.Exists("P.1.2.1"))
	assert.False(t, svc.Exists("A.9.9"))
}

func TestBySide(t *testing.T) {
	svc := NewService(DefaultCatalog())

	assets := svc.BySide(model.SideAsset)
	liabs := svc.BySide(model.SideLiabilityEquity)
	assert.NotEmpty(t, assets)
	assert.NotEmpty(t, liabs)
	assert.Len(t, svc.All(), len(assets)+len(liabs))
	for _, e := range assets {
		assert.Equal(t, model.SideAsset, e.Side)
	}
}

func TestSaveLoad(t *testing.T) {
	svc := NewService(DefaultCatalog())
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, svc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.All(), len(svc.All()))

	for _, orig := range svc.All() {
		got, ok := loaded.Get(orig.Code)
		require.True(t, ok, "code %s should exist", orig.Code)
		assert.Equal(t, orig.Name, got.Name)
		assert.Equal(t, orig.Side, got.Side)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}
