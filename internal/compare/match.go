package compare

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/bilanco-dev/bilanco/internal/accounts"
)

// Matcher decides which existing row an item without an account code
// belongs to.
type Matcher interface {
	Match(name string, rows []Row) (int, bool)
}

// ExactCode never matches by name: uncoded items always get their own row.
type ExactCode struct{}

// Match implements Matcher.
func (ExactCode) Match(string, []Row) (int, bool) { return 0, false }

// NameMatch matches on display names: equal after folding, then one name
// containing the other, then the closest Levenshtein similarity at or above
// MinSimilarity.
type NameMatch struct {
	MinSimilarity float64
}

// minContainLen keeps short labels like "KDV" from matching everything.
const minContainLen = 4

// Match implements Matcher.
func (m NameMatch) Match(name string, rows []Row) (int, bool) {
	want := accounts.FoldName(name)
	if want == "" {
		return 0, false
	}

	folded := make([]string, len(rows))
	for i, r := range rows {
		folded[i] = accounts.FoldName(r.Name)
	}

	for i, f := range folded {
		if f == want {
			return i, true
		}
	}

	if utf8.RuneCountInString(want) >= minContainLen {
		for i, f := range folded {
			if utf8.RuneCountInString(f) < minContainLen {
				continue
			}
			if strings.Contains(f, want) || strings.Contains(want, f) {
				return i, true
			}
		}
	}

	best, bestScore := -1, 0.0
	for i, f := range folded {
		if f == "" {
			continue
		}
		if s := similarity(want, f); s >= m.MinSimilarity && s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, best >= 0
}

func similarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen)
}
