package catalog

import (
	"strings"

	"github.com/imkonsowa/restaurant-chatbot/nlu"
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a an the show me menu price prices cost costs how much what whats is are of for do does
		you have your please can i get want tell about give any some it its there serve sell
		we our to like would could pls kindly thanks thank hi hello in on with and that this
		one order available details detail info list see view full all need`) {
		stopWords[w] = struct{}{}
	}
}

// SearchTerms is the normalized message without stop words. Size and flavour
// words are kept because they select variants.
func SearchTerms(text string) string {
	var kept []string
	for _, w := range nlu.Words(nlu.Normalize(text)) {
		if _, stop := stopWords[w]; !stop {
			kept = append(kept, w)
		}
	}

	return strings.Join(kept, " ")
}

// CleanQuery is SearchTerms, or the whole normalized message when every word
// was a stop word.
func CleanQuery(text string) string {
	if q := SearchTerms(text); q != "" {
		return q
	}

	return nlu.Normalize(text)
}
