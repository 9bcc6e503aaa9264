package responder

import (
	"fmt"
	"strings"

	"github.com/imkonsowa/restaurant-chatbot/models"
	"github.com/imkonsowa/restaurant-chatbot/nlu"
	"github.com/imkonsowa/restaurant-chatbot/session"
)

const faqFallback = "Sorry, I don't have an answer for that. You can ask about delivery, vegetarian options, halal food, or our services."

// Question words too common to tell FAQs apart.
var faqIgnored = map[string]struct{}{
	"have": {}, "your": {}, "what": {}, "does": {}, "with": {}, "there": {}, "this": {},
	"that": {}, "where": {}, "when": {}, "which": {}, "offer": {}, "about": {}, "available": {},
}

func (r *Renderer) branches(s *session.Session) string {
	if len(r.data.Branches) == 0 {
		return "Sorry, branch information is currently unavailable."
	}

	var b strings.Builder
	if s.ShownBranches > 0 {
		b.WriteString(repeatPrefix)
	}
	s.ShownBranches++

	b.WriteString("OUR BRANCHES:\n")
	for _, branch := range r.data.Branches {
		b.WriteString("\n" + branch.Name)
		if branch.City != "" {
			fmt.Fprintf(&b, " (%s)", branch.City)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "Address: %s\n", orNotAvailable(branch.Address))
		fmt.Fprintf(&b, "Phone: %s\n", orNotAvailable(branch.Phone))
	}

	return strings.TrimSpace(b.String())
}

func orNotAvailable(s string) string {
	if s == "" {
		return "Not available"
	}

	return s
}

func (r *Renderer) hours(s *session.Session) string {
	if len(r.data.Hours) == 0 {
		return "Sorry, opening hours are currently unavailable."
	}

	var b strings.Builder
	if s.ShownHours > 0 {
		b.WriteString(repeatPrefix)
	}
	s.ShownHours++

	b.WriteString("OPENING HOURS:\n")
	for _, entry := range r.data.Hours {
		name := entry.BranchName
		if name == "" {
			name = "All branches"
		}
		fmt.Fprintf(&b, "\n**%s**\n", name)

		for _, day := range models.Weekdays {
			if text := entry.Regular.Day(day); text != "" {
				fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(day[:1])+day[1:], text)
			}
		}

		if entry.SpecialNotes != "" {
			fmt.Fprintf(&b, "Note: %s\n", entry.SpecialNotes)
		}
	}

	return strings.TrimSpace(b.String())
}

func (r *Renderer) faq(text string, s *session.Session) string {
	normalized := nlu.Normalize(text)

	if strings.Contains(normalized, "deliver") {
		answer := nlu.DeliveryAnswer
		for _, f := range r.data.FAQs {
			if strings.Contains(strings.ToLower(f.Question), "deliver") {
				answer = f.Answer
				break
			}
		}

		if s.ShownDelivery > 0 {
			answer = repeatPrefix + answer
		}
		s.ShownDelivery++

		return answer
	}

	if len(r.data.FAQs) == 0 {
		return "Sorry, FAQ information is currently unavailable."
	}

	for _, f := range r.data.FAQs {
		for _, word := range nlu.Words(nlu.Normalize(f.Question)) {
			if len(word) <= 3 {
				continue
			}
			if _, ignored := faqIgnored[word]; ignored {
				continue
			}
			if strings.Contains(normalized, word) {
				return f.Answer
			}
		}
	}

	return faqFallback
}

func (r *Renderer) about() string {
	text := nlu.BrandAnswer
	if r.data.About != nil && r.data.About.Mission != "" {
		text += "\n\nOur mission: " + r.data.About.Mission
	}

	return text
}
