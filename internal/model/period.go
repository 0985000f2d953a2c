package model

import (
	"sort"
	"strconv"
	"strings"
)

// AdjustedSuffix marks an inflation-adjusted period column ("2024E").
const AdjustedSuffix = "E"

// PeriodYear returns the year of a period key and whether the key is an
// inflation-adjusted variant. ok is false for keys that are not a year.
func PeriodYear(key string) (year int, adjusted, ok bool) {
	base := key
	if strings.HasSuffix(key, AdjustedSuffix) {
		base = strings.TrimSuffix(key, AdjustedSuffix)
		adjusted = true
	}
	if len(base) != 4 {
		return 0, false, false
	}
	y, err := strconv.Atoi(base)
	if err != nil {
		return 0, false, false
	}
	return y, adjusted, true
}

// SortPeriods orders period keys by year, plain before adjusted. Keys that
// are not years sort lexically after all years.
func SortPeriods(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		yi, ai, oki := PeriodYear(keys[i])
		yj, aj, okj := PeriodYear(keys[j])
		switch {
		case oki && okj:
			if yi != yj {
				return yi < yj
			}
			return !ai && aj
		case oki != okj:
			return oki
		default:
			return keys[i] < keys[j]
		}
	})
}

// CollectPeriods returns the sorted union of period keys used by items.
func CollectPeriods(items []LineItem) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, it := range items {
		for k := range it.PeriodValues {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	SortPeriods(keys)
	return keys
}
