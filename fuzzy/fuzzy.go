// Package fuzzy scores how close two short strings are on a 0-100 scale.
// Scores are only meant to be compared against thresholds: 100 is an exact (or,
// for PartialRatio and TokenSetRatio, contained) match. All scorers compare
// case-insensitively.
package fuzzy

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Scorer is any of the similarity functions of this package.
type Scorer func(a, b string) int

func prepare(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Ratio is the edit-distance similarity of a and b.
func Ratio(a, b string) int {
	return ratio(prepare(a), prepare(b))
}

func ratio(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 100
	}

	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	dist := levenshtein.ComputeDistance(a, b)

	return int(math.Round(100 * float64(longest-dist) / float64(longest)))
}

// PartialRatio aligns the shorter string against every window of the longer one
// and keeps the best Ratio.
func PartialRatio(a, b string) int {
	a, b = prepare(a), prepare(b)
	if a == "" || b == "" {
		return 0
	}

	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if strings.Contains(string(long), string(short)) {
		return 100
	}

	best := 0
	for i := 0; i+len(short) <= len(long); i++ {
		if score := ratio(string(short), string(long[i:i+len(short)])); score > best {
			best = score
		}
	}

	return best
}

// TokenSetRatio compares the word sets of a and b, ignoring order and repeats.
// When one set is contained in the other the score is 100.
func TokenSetRatio(a, b string) int {
	ta, tb := tokenSet(a), tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			common = append(common, tok)
		} else {
			onlyA = append(onlyA, tok)
		}
	}
	for tok := range tb {
		if _, ok := ta[tok]; !ok {
			onlyB = append(onlyB, tok)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	base := strings.Join(common, " ")
	withA := strings.TrimSpace(base + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(base + " " + strings.Join(onlyB, " "))

	return max(ratio(base, withA), ratio(base, withB), ratio(withA, withB))
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = struct{}{}
	}

	return set
}

type Match struct {
	Value string
	Index int
	Score int
}

// BestMatch returns the highest scoring candidate. The first candidate wins ties.
func BestMatch(query string, candidates []string, scorer Scorer) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	best := Match{Index: -1, Score: -1}
	for i, c := range candidates {
		if score := scorer(query, c); score > best.Score {
			best = Match{Value: c, Index: i, Score: score}
		}
	}

	return best, true
}
