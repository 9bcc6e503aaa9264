package catalog

import (
	"github.com/imkonsowa/restaurant-chatbot/fuzzy"
	"github.com/imkonsowa/restaurant-chatbot/nlu"
)

const unavailableThreshold = 80

type alias struct {
	name      string
	canonical string
}

// Categories customers ask for that the restaurant does not serve yet.
var unavailable = []alias{
	{"roll", "rolls"},
	{"rolls", "rolls"},
	{"role", "rolls"},
	{"wrap", "wraps"},
	{"wraps", "wraps"},
	{"soup", "soups"},
	{"soups", "soups"},
}

// MatchUnavailable returns the canonical name of a known-unavailable category
// the query refers to. Both the whole query and each of its words are tried.
func MatchUnavailable(query string) (string, bool) {
	if query == "" {
		return "", false
	}

	best, bestScore := "", -1
	for _, part := range append([]string{query}, nlu.Words(query)...) {
		for _, a := range unavailable {
			if score := fuzzy.Ratio(part, a.name); score > bestScore {
				best, bestScore = a.canonical, score
			}
		}
	}
	if bestScore < unavailableThreshold {
		return "", false
	}

	return best, true
}
