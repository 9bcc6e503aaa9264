package nlu

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

type contraction struct {
	short, long string
}

// Expanded in declaration order with plain substring replacement, so an entry
// that overlaps a later one wins.
var contractions = []contraction{
	{"what's", "what is"},
	{"what're", "what are"},
	{"who's", "who is"},
	{"where's", "where is"},
	{"when's", "when is"},
	{"why's", "why is"},
	{"how's", "how is"},
	{"it's", "it is"},
	{"that's", "that is"},
	{"there's", "there is"},
	{"here's", "here is"},
	{"i'm", "i am"},
	{"you're", "you are"},
	{"we're", "we are"},
	{"they're", "they are"},
	{"i've", "i have"},
	{"you've", "you have"},
	{"we've", "we have"},
	{"they've", "they have"},
	{"i'll", "i will"},
	{"you'll", "you will"},
	{"we'll", "we will"},
	{"they'll", "they will"},
	{"don't", "do not"},
	{"doesn't", "does not"},
	{"didn't", "did not"},
	{"can't", "cannot"},
	{"won't", "will not"},
	{"isn't", "is not"},
	{"aren't", "are not"},
	{"wasn't", "was not"},
	{"weren't", "were not"},
}

var apostrophes = strings.NewReplacer("’", "'", "‘", "'", "`", "'")

// Normalize lowercases text, expands contractions, turns punctuation into
// spaces and collapses whitespace. Letters outside ASCII are kept.
func Normalize(text string) string {
	text = norm.NFC.String(strings.ToLower(text))
	text = apostrophes.Replace(text)

	for _, c := range contractions {
		text = strings.ReplaceAll(text, c.short, c.long)
	}

	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return ' '
	}, text)

	return strings.Join(strings.Fields(text), " ")
}

// Words splits normalized text into words.
func Words(normalized string) []string {
	return strings.Fields(normalized)
}

// HasWord reports whether word appears as a whole word in normalized text.
func HasWord(normalized, word string) bool {
	for _, w := range strings.Fields(normalized) {
		if w == word {
			return true
		}
	}

	return false
}

// HasPhrase reports whether phrase appears in normalized text on word
// boundaries, so "see you" matches "ok see you soon" but not "see yourself".
func HasPhrase(normalized, phrase string) bool {
	if phrase == "" {
		return false
	}

	padded := " " + normalized + " "
	return strings.Contains(padded, " "+phrase+" ")
}
