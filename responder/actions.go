package responder

import "strings"

type actionRule struct {
	triggers []string
	actions  []string
}

// Checked in order against the lowercased raw message; the first rule with a
// matching trigger wins.
var actionRules = []actionRule{
	{
		triggers: []string{"hi", "hello", "hey", "greet", "start"},
		actions:  []string{"View Menu", "Our Branches", "Opening Hours"},
	},
	{
		triggers: []string{"menu", "dish", "food", "order", "burger", "pizza"},
		actions:  []string{"Full Menu", "Our Branches", "Order Online"},
	},
	{
		triggers: []string{"branch", "location", "address", "where"},
		actions:  []string{"View Menu", "Opening Hours", "Contact"},
	},
	{
		triggers: []string{"open", "hour", "timing", "close", "time"},
		actions:  []string{"View Menu", "Our Branches"},
	},
}

// SuggestActions proposes quick-reply button labels for a message. It never
// returns nil.
func SuggestActions(message string) []string {
	lower := strings.ToLower(message)
	for _, rule := range actionRules {
		for _, t := range rule.triggers {
			if strings.Contains(lower, t) {
				return append([]string(nil), rule.actions...)
			}
		}
	}

	return []string{}
}
