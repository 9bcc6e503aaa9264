package nlu

import "strings"

type Intent string

const (
	Greeting    Intent = "greeting"
	Farewell    Intent = "farewell"
	HalalQuery  Intent = "halal_query"
	BrandQuery  Intent = "brand_query"
	HoursQuery  Intent = "hours_query"
	BranchQuery Intent = "branch_query"
	FAQQuery    Intent = "faq_query"
	MenuQuery   Intent = "menu_query"
	About       Intent = "about"
	Unknown     Intent = "unknown"
)

func AllIntents() []Intent {
	return []Intent{Greeting, Farewell, HalalQuery, BrandQuery, HoursQuery, BranchQuery, FAQQuery, MenuQuery, About, Unknown}
}

// Matcher inspects an already normalized message.
type Matcher func(normalized string) bool

type Rule struct {
	Name   string
	Intent Intent
	Match  Matcher
}

// Exact matches captions that make up the whole message.
func Exact(phrases map[string]Intent, intent Intent) Matcher {
	return func(normalized string) bool {
		got, ok := phrases[normalized]
		return ok && got == intent
	}
}

// ContainsAny matches when any keyword occurs as a substring.
func ContainsAny(keywords ...string) Matcher {
	return func(normalized string) bool {
		for _, k := range keywords {
			if strings.Contains(normalized, k) {
				return true
			}
		}
		return false
	}
}

// WordsOrPhrases matches whole words, or phrases aligned on word boundaries.
func WordsOrPhrases(words, phrases []string) Matcher {
	return func(normalized string) bool {
		for _, w := range words {
			if HasWord(normalized, w) {
				return true
			}
		}
		for _, p := range phrases {
			if HasPhrase(normalized, p) {
				return true
			}
		}
		return false
	}
}

// AnyOf matches when one of matchers does.
func AnyOf(matchers ...Matcher) Matcher {
	return func(normalized string) bool {
		for _, m := range matchers {
			if m(normalized) {
				return true
			}
		}
		return false
	}
}

// DefaultRules is the classification cascade. Order matters: the first rule
// that matches decides the intent.
func DefaultRules() []Rule {
	var rules []Rule
	for _, intent := range []Intent{MenuQuery, HoursQuery, BranchQuery, FAQQuery} {
		rules = append(rules, Rule{Name: "caption:" + string(intent), Intent: intent, Match: Exact(captionIntents, intent)})
	}

	return append(rules,
		Rule{Name: "menu", Intent: MenuQuery, Match: ContainsAny(menuKeywords...)},
		Rule{Name: "price", Intent: MenuQuery, Match: ContainsAny(priceKeywords...)},
		Rule{Name: "farewell", Intent: Farewell, Match: WordsOrPhrases(farewellWords, farewellPhrases)},
		Rule{Name: "halal", Intent: HalalQuery, Match: ContainsAny(halalKeywords...)},
		Rule{Name: "brand", Intent: BrandQuery, Match: ContainsAny(brandKeywords...)},
		Rule{Name: "about", Intent: About, Match: ContainsAny(aboutKeywords...)},
		Rule{Name: "location", Intent: BranchQuery, Match: ContainsAny(locationKeywords...)},
		Rule{Name: "time", Intent: HoursQuery, Match: ContainsAny(timeKeywords...)},
		Rule{Name: "delivery", Intent: FAQQuery, Match: ContainsAny(deliveryKeywords...)},
		Rule{Name: "faq-topic", Intent: FAQQuery, Match: WordsOrPhrases(faqTopicWords, nil)},
		Rule{Name: "food", Intent: MenuQuery, Match: AnyOf(ContainsAny(foodKeywords...), WordsOrPhrases(foodWords, nil))},
		Rule{Name: "greeting", Intent: Greeting, Match: WordsOrPhrases(greetingWords, greetingPhrases)},
	)
}

type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultRules())
}

// Classify returns the intent of the first matching rule, or Unknown.
func (c *Classifier) Classify(text string) Intent {
	intent, _ := c.Explain(text)
	return intent
}

// Explain is Classify plus the name of the rule that fired ("" for Unknown).
func (c *Classifier) Explain(text string) (Intent, string) {
	normalized := Normalize(text)
	if normalized == "" {
		return Unknown, ""
	}

	for _, r := range c.rules {
		if r.Match(normalized) {
			return r.Intent, r.Name
		}
	}

	return Unknown, ""
}
