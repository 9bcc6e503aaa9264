// Package catalog finds the category or dish a message is talking about.
package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/imkonsowa/restaurant-chatbot/fuzzy"
	"github.com/imkonsowa/restaurant-chatbot/models"
)

type Kind string

const (
	KindCategory Kind = "category"
	KindDish     Kind = "dish"
)

const (
	categoryThreshold = 80
	dishThreshold     = 60

	categoryPreferred = 85
	dishPreferred     = 80
	dishOverride      = 10

	substringScore     = 95
	minSubstringLength = 3
)

// Reference is a resolved catalog entry. Category is set for KindCategory and
// Item for KindDish.
type Reference struct {
	Kind     Kind
	Name     string
	Score    int
	Category *models.Category
	Item     *models.MenuItem
}

type candidate struct {
	text     string
	category int
	item     int
}

// Resolver matches free text against one catalog. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	catalog    *models.Catalog
	categories []string
	dishes     []candidate
}

func NewResolver(catalog *models.Catalog) *Resolver {
	r := &Resolver{catalog: catalog}

	for ci := range catalog.Categories {
		category := &catalog.Categories[ci]
		r.categories = append(r.categories, category.DisplayName())

		for ii := range category.Items {
			item := &category.Items[ii]
			r.dishes = append(r.dishes, candidate{text: item.Name, category: ci, item: ii})
			for _, v := range item.Variants {
				if v.Size != "" {
					r.dishes = append(r.dishes, candidate{text: v.Size + " " + item.Name, category: ci, item: ii})
				}
			}
			for _, f := range item.Flavours {
				r.dishes = append(r.dishes, candidate{text: f + " " + item.Name, category: ci, item: ii})
			}
		}
	}

	return r
}

// Resolve returns the best category or dish for text, if any clears its threshold.
func (r *Resolver) Resolve(text string) (*Reference, bool) {
	query := CleanQuery(text)
	if query == "" {
		return nil, false
	}

	return decide(r.matchCategory(query), r.matchDish(query))
}

func (r *Resolver) matchCategory(query string) *Reference {
	m, ok := fuzzy.BestMatch(query, r.categories, fuzzy.TokenSetRatio)
	if !ok || m.Score < categoryThreshold {
		return nil
	}

	category := &r.catalog.Categories[m.Index]
	return &Reference{Kind: KindCategory, Name: category.Name, Score: m.Score, Category: category}
}

func (r *Resolver) matchDish(query string) *Reference {
	best, bestScore := -1, -1
	for i, c := range r.dishes {
		score := fuzzy.TokenSetRatio(query, c.text)
		if utf8.RuneCountInString(query) >= minSubstringLength && strings.Contains(strings.ToLower(c.text), query) {
			score = max(score, substringScore)
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < dishThreshold {
		return nil
	}

	c := r.dishes[best]
	item := &r.catalog.Categories[c.category].Items[c.item]

	return &Reference{Kind: KindDish, Name: item.Name, Score: bestScore, Item: item}
}

func decide(category, dish *Reference) (*Reference, bool) {
	switch {
	case category != nil && category.Score > categoryPreferred:
		if dish != nil && dish.Score > category.Score+dishOverride {
			return dish, true
		}
		return category, true
	case dish != nil && dish.Score > dishPreferred:
		return dish, true
	case category != nil && dish != nil:
		if dish.Score > category.Score {
			return dish, true
		}
		return category, true
	case category != nil:
		return category, true
	case dish != nil:
		return dish, true
	}

	return nil, false
}

// Lookup rebuilds a reference from a stored kind and name.
func (r *Resolver) Lookup(kind Kind, name string) (*Reference, bool) {
	switch kind {
	case KindCategory:
		if c, ok := r.catalog.FindCategory(name); ok {
			return &Reference{Kind: KindCategory, Name: c.Name, Score: 100, Category: c}, true
		}
	case KindDish:
		if item, ok := r.catalog.FindItem(name); ok {
			return &Reference{Kind: KindDish, Name: item.Name, Score: 100, Item: item}, true
		}
	}

	return nil, false
}
