package responder

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/imkonsowa/restaurant-chatbot/dataset"
	"github.com/imkonsowa/restaurant-chatbot/models"
	"github.com/imkonsowa/restaurant-chatbot/nlu"
	"github.com/imkonsowa/restaurant-chatbot/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()

	ds, err := dataset.LoadDir("../data")
	require.NoError(t, err)

	return New(ds, opts...)
}

func newSession() *session.Session {
	return &session.Session{ID: "test"}
}

func TestGreetingAndFarewell(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	reply := r.Respond("hi", s)
	assert.Equal(t, nlu.Greeting, reply.Intent)
	assert.Contains(t, nlu.Greetings, reply.Text)

	reply = r.Respond("goodbye", s)
	assert.Equal(t, nlu.Farewell, reply.Intent)
	assert.Contains(t, nlu.Farewells, reply.Text)
}

func TestPicker(t *testing.T) {
	r := newRenderer(t, WithPicker(func(n int) int { return n - 1 }))

	reply := r.Respond("hello", newSession())
	assert.Equal(t, nlu.Greetings[len(nlu.Greetings)-1], reply.Text)
}

func TestCannedAnswers(t *testing.T) {
	r := newRenderer(t)

	assert.Equal(t, nlu.HalalAnswer, r.Respond("is it halal?", newSession()).Text)
	assert.Equal(t, nlu.BrandAnswer, r.Respond("what is speedy bites", newSession()).Text)

	about := r.Respond("what is your mission", newSession())
	assert.Equal(t, nlu.About, about.Intent)
	assert.True(t, strings.HasPrefix(about.Text, nlu.BrandAnswer))
	assert.Contains(t, about.Text, "Serve fresh, fast and affordable food with a smile.")
}

func TestDishPrice(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	reply := r.Respond("what's the price of zinger burger", s)
	assert.Equal(t, nlu.MenuQuery, reply.Intent)
	assert.Contains(t, reply.Text, "**Zinger Burger**")
	assert.Contains(t, reply.Text, "Regular: 450 PKR")
	assert.Contains(t, reply.Text, "Large: 650 PKR")
	assert.Contains(t, reply.Text, "Cheese Slice: +80 PKR")
	assert.NotContains(t, reply.Text, "I think you meant")

	require.NotNil(t, s.LastTopic)
	assert.Equal(t, session.Topic{Kind: "dish", Name: "Zinger Burger"}, *s.LastTopic)
	assert.Equal(t, s.LastTopic, reply.Topic)
}

func TestDishCardWithBasePriceAndFlavours(t *testing.T) {
	r := newRenderer(t)

	reply := r.Respond("tell me the price of hot wings", newSession())
	assert.Contains(t, reply.Text, "**Hot Wings**")
	assert.Contains(t, reply.Text, "Price: 600 PKR")
	assert.Contains(t, reply.Text, "Flavours: Peri Peri, BBQ, Honey Mustard")
}

func TestCorrectionLine(t *testing.T) {
	r := newRenderer(t)

	reply := r.Respond("price of zingr burgr", newSession())
	assert.True(t, strings.HasPrefix(reply.Text, "I think you meant **Zinger Burger**."), reply.Text)
}

func TestFollowUpReusesLastTopic(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	r.Respond("price of beef smash burger", s)
	require.NotNil(t, s.LastTopic)

	reply := r.Respond("how much is it?", s)
	assert.Equal(t, nlu.MenuQuery, reply.Intent)
	assert.Contains(t, reply.Text, "**Beef Smash Burger**")
	assert.Contains(t, reply.Text, "750 PKR")
	assert.NotContains(t, reply.Text, "I think you meant")
	assert.Equal(t, "Beef Smash Burger", s.LastTopic.Name)
}

func TestFollowUpWithStaleTopic(t *testing.T) {
	r := newRenderer(t)
	s := newSession()
	s.LastTopic = &session.Topic{Kind: "dish", Name: "Discontinued Wrap"}

	reply := r.Respond("what is the price", s)
	assert.Contains(t, reply.Text, "Which dish would you like the price of?")
}

func TestCategory(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	reply := r.Respond("burgers", s)
	assert.Contains(t, reply.Text, "**Burgers**")
	assert.Contains(t, reply.Text, "• Zinger Burger - 450–650 PKR")
	assert.Contains(t, reply.Text, "• Beef Smash Burger - 750 PKR")
	assert.Equal(t, &session.Topic{Kind: "category", Name: "burgers"}, s.LastTopic)
}

func TestUnavailableCategory(t *testing.T) {
	r := newRenderer(t)

	reply := r.Respond("do you have rolls", newSession())
	assert.Equal(t, nlu.MenuQuery, reply.Intent)
	assert.Contains(t, reply.Text, "currently unavailable")
	assert.Contains(t, reply.Text, "rolls")
	assert.NotEqual(t, nlu.Fallback, reply.Text)
}

func TestViewMenuOnlyPrompts(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	reply := r.Respond("Show me the menu", s)
	assert.Equal(t, nlu.MenuQuery, reply.Intent)
	assert.Contains(t, reply.Text, "full menu")
	assert.NotContains(t, reply.Text, "Zinger Burger")
	assert.Equal(t, 1, s.ShownMenu)
}

func TestFullMenu(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	reply := r.Respond("full menu", s)
	assert.Equal(t, 1, s.ShownMenu)

	for _, category := range r.Data().Catalog.Categories {
		if len(category.Items) == 0 {
			continue
		}
		assert.Contains(t, reply.Text, strings.ToUpper(category.DisplayName()))
		for _, item := range category.Items {
			assert.Contains(t, reply.Text, item.Name)
		}
	}
	assert.Contains(t, reply.Text, "Beef Smash Burger - 750 PKR")
	assert.Contains(t, reply.Text, "Zinger Burger - 450–650 PKR")
	assert.Contains(t, reply.Text, "Chicken Tikka Pizza - 650–1650 PKR")
}

func TestPriceWithoutDish(t *testing.T) {
	r := newRenderer(t)

	reply := r.Respond("what is the price", newSession())
	assert.Contains(t, reply.Text, "Which dish would you like the price of?")
}

func TestPopularItems(t *testing.T) {
	r := newRenderer(t)

	reply := r.Respond("I want food", newSession())
	assert.Contains(t, reply.Text, "Popular Items")
	assert.Contains(t, reply.Text, "• Zinger Burger - 450–650 PKR")
	assert.Contains(t, reply.Text, "• Chicken Tikka Pizza")
	assert.Equal(t, popularCount, strings.Count(reply.Text, "• "))
}

func TestBranchesRepeatVisit(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	first := r.Respond("where are your branches", s)
	assert.Equal(t, nlu.BranchQuery, first.Intent)
	assert.NotContains(t, first.Text, "already viewed")
	assert.Contains(t, first.Text, "Gulberg Branch (Lahore)")
	assert.Contains(t, first.Text, "Phone: 051-111-777-555")

	second := r.Respond("where are your branches", s)
	assert.True(t, strings.HasPrefix(second.Text, "You've already viewed this"))
	assert.Equal(t, 2, s.ShownBranches)
}

func TestHours(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	first := r.Respond("what are your hours", s)
	assert.Equal(t, nlu.HoursQuery, first.Intent)
	assert.Contains(t, first.Text, "**Gulberg Branch**")
	assert.Contains(t, first.Text, "Monday: 11:00 AM - 12:00 AM")
	assert.Contains(t, first.Text, "Friday: 2:00 PM - 1:00 AM")
	assert.Contains(t, first.Text, "Note: Closed on Eid day one.")
	assert.NotContains(t, first.Text, "already viewed")

	second := r.Respond("when do you open", s)
	assert.True(t, strings.HasPrefix(second.Text, "You've already viewed this"))
	assert.Equal(t, 2, s.ShownHours)
}

func TestDelivery(t *testing.T) {
	r := newRenderer(t)
	s := newSession()

	first := r.Respond("do you offer delivery", s)
	assert.Equal(t, nlu.FAQQuery, first.Intent)
	assert.Contains(t, first.Text, "We deliver within 5 km")
	assert.NotContains(t, first.Text, "already viewed")

	second := r.Respond("can you deliver to DHA?", s)
	assert.True(t, strings.HasPrefix(second.Text, "You've already viewed this"))
	assert.Equal(t, 2, s.ShownDelivery)
}

func TestFAQKeywordOverlap(t *testing.T) {
	r := newRenderer(t)

	assert.Contains(t, r.Respond("do you take card payments", newSession()).Text, "We accept cash")
	assert.Contains(t, r.Respond("is parking available", newSession()).Text, "free customer parking")
	assert.Equal(t, faqFallback, r.Respond("is there wifi", newSession()).Text)
}

func TestUnknown(t *testing.T) {
	r := newRenderer(t)

	reply := r.Respond("fajita piza", newSession())
	assert.Equal(t, nlu.Unknown, reply.Intent)
	assert.Contains(t, reply.Text, "**Fajita Pizza**")

	assert.Equal(t, nlu.Fallback, r.Respond("quantum physics today", newSession()).Text)
	assert.Equal(t, nlu.Fallback, r.Respond("", newSession()).Text)
}

func TestNonASCIICategoryNames(t *testing.T) {
	price := 300.0
	r := New(&models.Dataset{Currency: "PKR", Catalog: models.Catalog{Categories: []models.Category{
		{Name: "éclairs", Items: []models.MenuItem{{Name: "Chocolate Éclair", BasePrice: &price}}},
	}}})

	full := r.Respond("full menu", newSession()).Text
	assert.True(t, utf8.ValidString(full))
	assert.Contains(t, full, "ÉCLAIRS (1 items)")
	assert.Contains(t, full, "1. Chocolate Éclair - 300 PKR")

	prompt := r.Respond("view menu", newSession()).Text
	assert.True(t, strings.HasPrefix(prompt, "We serve Éclairs."), prompt)
}

func TestEmptyDataset(t *testing.T) {
	r := New(&models.Dataset{Currency: "PKR"})
	s := newSession()

	assert.Equal(t, "Sorry, the menu is currently unavailable.", r.Respond("full menu", s).Text)
	assert.Equal(t, "Sorry, branch information is currently unavailable.", r.Respond("where are your branches", s).Text)
	assert.Equal(t, "Sorry, opening hours are currently unavailable.", r.Respond("what are your hours", s).Text)
	assert.Equal(t, "Sorry, FAQ information is currently unavailable.", r.Respond("vegetarian options?", s).Text)
	assert.Equal(t, nlu.DeliveryAnswer, r.Respond("do you offer delivery", s).Text)
	assert.Equal(t, "Sorry, the menu is currently unavailable.", r.Respond("zinger", s).Text)
	assert.Equal(t, nlu.Fallback, r.Respond("fajita", s).Text)
}
