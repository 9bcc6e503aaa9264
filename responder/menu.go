package responder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/imkonsowa/restaurant-chatbot/catalog"
	"github.com/imkonsowa/restaurant-chatbot/fuzzy"
	"github.com/imkonsowa/restaurant-chatbot/models"
	"github.com/imkonsowa/restaurant-chatbot/nlu"
	"github.com/imkonsowa/restaurant-chatbot/session"
)

const (
	popularCount       = 4
	lastResortMinScore = 75
)

var (
	viewMenuPhrases = []string{
		"view menu", "show me the menu", "show menu", "see menu", "see the menu", "menu please",
		"what is on the menu", "what is on your menu",
	}
	fullMenuPhrases = []string{
		"full menu", "all menu", "complete menu", "entire menu", "whole menu",
		"show all", "all dishes", "all items", "everything",
	}
	priceWords    = []string{"price", "cost"}
	followUpWords = []string{"price", "cost", "want"}
)

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}

	return false
}

func (r *Renderer) menu(text string, s *session.Session) (string, *session.Topic) {
	if r.data.Catalog.Empty() {
		return "Sorry, the menu is currently unavailable.", nil
	}

	normalized := nlu.Normalize(text)
	full := containsAny(normalized, fullMenuPhrases)
	view := normalized == "menu" || containsAny(normalized, viewMenuPhrases)

	switch {
	case full:
		s.ShownMenu = 1
		return r.fullMenu(), nil
	case view:
		s.ShownMenu = 1
		return r.menuPrompt(), nil
	}

	ref, found := r.resolver.Resolve(text)
	reused := false
	if s.LastTopic != nil && (catalog.SearchTerms(text) == "" || (!found && containsAny(normalized, followUpWords))) {
		if last, ok := r.resolver.Lookup(catalog.Kind(s.LastTopic.Kind), s.LastTopic.Name); ok {
			ref, found, reused = last, true, true
		}
	}

	if !found {
		if canonical, ok := catalog.MatchUnavailable(catalog.CleanQuery(text)); ok {
			return fmt.Sprintf("Sorry, %s are currently unavailable. Say \"full menu\" to see what we serve today.", canonical), nil
		}
		if containsAny(normalized, priceWords) {
			return r.askForDish(), nil
		}
		return r.popular(), nil
	}

	topic := &session.Topic{Kind: string(ref.Kind), Name: ref.Name}
	if !reused {
		s.LastTopic = topic
	}

	if ref.Kind == catalog.KindCategory {
		return r.categoryCard(ref.Category), topic
	}

	card := r.dishCard(ref.Item)
	if !reused && !strings.Contains(strings.ToLower(text), strings.ToLower(ref.Item.Name)) {
		card = "I think you meant **" + ref.Item.Name + "**.\n\n" + card
	}

	return card, topic
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// priceRange renders "450 PKR" or "450–650 PKR", or "" for an unpriced item.
func priceRange(item *models.MenuItem, currency string) string {
	prices := item.Prices()
	if len(prices) == 0 {
		return ""
	}

	lo, hi := prices[0], prices[0]
	for _, p := range prices[1:] {
		lo, hi = min(lo, p), max(hi, p)
	}
	if lo == hi {
		return formatPrice(lo) + " " + currency
	}

	return formatPrice(lo) + "–" + formatPrice(hi) + " " + currency
}

func (r *Renderer) itemLine(b *strings.Builder, prefix string, item *models.MenuItem) {
	b.WriteString(prefix + item.Name)
	if price := priceRange(item, r.data.Currency); price != "" {
		b.WriteString(" - " + price)
	}
	b.WriteString("\n")
}

func (r *Renderer) menuPrompt() string {
	var names []string
	for _, c := range r.data.Catalog.Categories {
		if len(c.Items) > 0 {
			names = append(names, c.DisplayName())
		}
	}

	return fmt.Sprintf("We serve %s. Say \"full menu\" to see every dish with prices, or ask me about a specific dish!",
		strings.Join(names, ", "))
}

func (r *Renderer) fullMenu() string {
	var b strings.Builder
	b.WriteString("OUR FULL MENU\n\n")

	for i := range r.data.Catalog.Categories {
		category := &r.data.Catalog.Categories[i]
		if len(category.Items) == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s (%d items)\n", strings.ToUpper(category.DisplayName()), len(category.Items))
		for j := range category.Items {
			r.itemLine(&b, fmt.Sprintf("%d. ", j+1), &category.Items[j])
		}
		b.WriteString("\n")
	}

	b.WriteString("Ask me about any dish for details or order now!")

	return b.String()
}

func (r *Renderer) categoryCard(category *models.Category) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n", category.DisplayName())

	for i := range category.Items {
		r.itemLine(&b, "• ", &category.Items[i])
	}

	b.WriteString("\nAsk me about any of these for details!")

	return b.String()
}

func (r *Renderer) dishCard(item *models.MenuItem) string {
	currency := r.data.Currency

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", item.Name)

	if item.Description != "" {
		fmt.Fprintf(&b, "%s\n", item.Description)
	}

	if len(item.Variants) > 0 {
		b.WriteString("\nPrices:\n")
		for _, v := range item.Variants {
			fmt.Fprintf(&b, "  • %s: %s %s\n", v.Size, formatPrice(v.Price), currency)
		}
	} else if item.BasePrice != nil {
		fmt.Fprintf(&b, "\nPrice: %s %s\n", formatPrice(*item.BasePrice), currency)
	}

	if len(item.Flavours) > 0 {
		fmt.Fprintf(&b, "\nFlavours: %s\n", strings.Join(item.Flavours, ", "))
	}

	if len(item.Addons) > 0 {
		b.WriteString("\nAdd-ons:\n")
		for _, a := range item.Addons {
			fmt.Fprintf(&b, "  • %s: +%s %s\n", a.Name, formatPrice(a.Price), currency)
		}
	}

	return strings.TrimSpace(b.String())
}

func (r *Renderer) popular() string {
	var b strings.Builder
	b.WriteString("Popular Items:\n\n")

	shown := 0
	for i := range r.data.Catalog.Categories {
		category := &r.data.Catalog.Categories[i]
		if len(category.Items) == 0 {
			continue
		}
		r.itemLine(&b, "• ", &category.Items[0])
		if shown++; shown == popularCount {
			break
		}
	}

	b.WriteString("\nAsk me about a specific dish, or say \"full menu\" to see everything!")

	return b.String()
}

func (r *Renderer) askForDish() string {
	example := r.dishNames[0]

	return fmt.Sprintf("Which dish would you like the price of? Try asking \"price of %s\".", example)
}

func bestDish(query string, names []string) (string, bool) {
	m, ok := fuzzy.BestMatch(query, names, fuzzy.Ratio)
	if !ok || m.Score < lastResortMinScore {
		return "", false
	}

	return m.Value, true
}
