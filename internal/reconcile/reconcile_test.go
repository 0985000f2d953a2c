package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilanco-dev/bilanco/internal/hierarchy"
	"github.com/bilanco-dev/bilanco/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func forest(t *testing.T, period string, rows map[string]string) []*hierarchy.Node {
	t.Helper()
	var items []model.LineItem
	for c, v := range rows {
		items = append(items, model.LineItem{Code: c, PeriodValues: map[string]string{period: v}})
	}
	roots, _ := hierarchy.Build(items)
	_, err := hierarchy.Aggregate(roots, []string{period})
	require.NoError(t, err)
	return roots
}

func TestReconcile_Tolerance(t *testing.T) {
	assets := forest(t, "2024", map[string]string{"A.1": "600", "A.2": "400"})
	liabs := forest(t, "2024", map[string]string{"P.1": "1000,005"})

	r := Reconcile(assets, liabs, "2024", dec("0.01"))
	assert.True(t, dec("1000").Equal(r.AssetTotal))
	assert.True(t, dec("1000.005").Equal(r.LiabilityEquityTotal))
	assert.True(t, dec("-0.005").Equal(r.Difference))
	assert.True(t, r.Balanced)

	r = Reconcile(assets, liabs, "2024", dec("0.001"))
	assert.False(t, r.Balanced)
}

func TestReconcile_StrictLessThan(t *testing.T) {
	assets := forest(t, "2024", map[string]string{"A.1": "101"})
	liabs := forest(t, "2024", map[string]string{"P.1": "100"})

	assert.False(t, Reconcile(assets, liabs, "2024", dec("1")).Balanced, "|diff| == tolerance is not balanced")
	assert.True(t, Reconcile(assets, liabs, "2024", dec("1.01")).Balanced)
}

func TestReconcile_SumsRootsOnly(t *testing.T) {
	assets := forest(t, "2024", map[string]string{
		"A.1":     "",
		"A.1.1":   "",
		"A.1.1.1": "125.000,00",
		"A.1.3.1": "750.000,00", // orphan root
	})
	liabs := forest(t, "2024", map[string]string{"P.3.1.1": "875.000,00"})

	r := Reconcile(assets, liabs, "2024", dec("0.01"))
	assert.True(t, dec("875000").Equal(r.AssetTotal), "got %s", r.AssetTotal)
	assert.True(t, r.Balanced)
	assert.Contains(t, r.String(), "BALANCED")
}

func TestReconcile_MissingPeriod(t *testing.T) {
	assets := forest(t, "2024", map[string]string{"A.1": "10"})
	liabs := forest(t, "2024", map[string]string{"P.1": "10"})

	r := Reconcile(assets, liabs, "2023", dec("0.01"))
	assert.True(t, r.AssetTotal.IsZero())
	assert.True(t, r.LiabilityEquityTotal.IsZero())
	assert.True(t, r.Balanced)
}

func TestReconcileAll(t *testing.T) {
	mk := func(c string, vals map[string]string) model.LineItem {
		return model.LineItem{Code: c, PeriodValues: vals}
	}
	assets, _ := hierarchy.Build([]model.LineItem{mk("A.1", map[string]string{"2023": "50", "2024": "80"})})
	liabs, _ := hierarchy.Build([]model.LineItem{mk("P.1", map[string]string{"2023": "50", "2024": "70"})})
	periods := []string{"2023", "2024"}
	_, err := hierarchy.Aggregate(assets, periods)
	require.NoError(t, err)
	_, err = hierarchy.Aggregate(liabs, periods)
	require.NoError(t, err)

	rep := ReconcileAll(assets, liabs, periods, dec("0.01"))
	require.Len(t, rep.Results, 2)
	assert.False(t, rep.Balanced())

	r23, ok := rep.Period("2023")
	require.True(t, ok)
	assert.True(t, r23.Balanced)

	bad := rep.Unbalanced()
	require.Len(t, bad, 1)
	assert.Equal(t, "2024", bad[0].Period)
	assert.True(t, dec("10").Equal(bad[0].Difference))

	_, ok = rep.Period("1999")
	assert.False(t, ok)
	assert.True(t, Report{}.Balanced())
}
