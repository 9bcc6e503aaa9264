// Package responder turns a user message into the bot's reply, using the
// classifier, the catalog resolver and the caller's session.
package responder

import (
	"math/rand/v2"
	"strings"

	"github.com/imkonsowa/restaurant-chatbot/catalog"
	"github.com/imkonsowa/restaurant-chatbot/models"
	"github.com/imkonsowa/restaurant-chatbot/nlu"
	"github.com/imkonsowa/restaurant-chatbot/session"
)

const repeatPrefix = "You've already viewed this, but here it is again:\n\n"

type Reply struct {
	Text   string
	Intent nlu.Intent
	Rule   string
	Topic  *session.Topic
}

type Renderer struct {
	data       *models.Dataset
	classifier *nlu.Classifier
	resolver   *catalog.Resolver
	dishNames  []string
	pick       func(n int) int
}

type Option func(*Renderer)

func WithClassifier(c *nlu.Classifier) Option {
	return func(r *Renderer) { r.classifier = c }
}

// WithPicker replaces the random choice of canned greetings and farewells.
func WithPicker(pick func(n int) int) Option {
	return func(r *Renderer) { r.pick = pick }
}

// New builds a renderer over an immutable dataset. It is safe for concurrent
// use; all per-conversation state lives in the session passed to Respond.
func New(data *models.Dataset, opts ...Option) *Renderer {
	r := &Renderer{
		data:       data,
		classifier: nlu.DefaultClassifier(),
		resolver:   catalog.NewResolver(&data.Catalog),
		pick:       rand.IntN,
	}
	for _, category := range data.Catalog.Categories {
		for _, item := range category.Items {
			r.dishNames = append(r.dishNames, item.Name)
		}
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Renderer) Data() *models.Dataset {
	return r.data
}

// Respond answers one message and updates s in place. The caller must hold s
// exclusively for the duration of the call.
func (r *Renderer) Respond(text string, s *session.Session) Reply {
	intent, rule := r.classifier.Explain(text)
	reply := Reply{Intent: intent, Rule: rule}

	switch intent {
	case nlu.Greeting:
		reply.Text = r.choose(nlu.Greetings)
	case nlu.Farewell:
		reply.Text = r.choose(nlu.Farewells)
	case nlu.HalalQuery:
		reply.Text = nlu.HalalAnswer
	case nlu.BrandQuery:
		reply.Text = nlu.BrandAnswer
	case nlu.About:
		reply.Text = r.about()
	case nlu.MenuQuery:
		reply.Text, reply.Topic = r.menu(text, s)
	case nlu.BranchQuery:
		reply.Text = r.branches(s)
	case nlu.HoursQuery:
		reply.Text = r.hours(s)
	case nlu.FAQQuery:
		reply.Text = r.faq(text, s)
	default:
		reply.Text = r.unknown(text)
	}

	return reply
}

func (r *Renderer) choose(options []string) string {
	return options[r.pick(len(options))]
}

func (r *Renderer) unknown(text string) string {
	var words []string
	for _, w := range nlu.Words(nlu.Normalize(text)) {
		switch w {
		case "menu", "price", "order":
		default:
			words = append(words, w)
		}
	}
	if len(words) == 0 || len(words) > 2 {
		return nlu.Fallback
	}

	m, ok := bestDish(strings.Join(words, " "), r.dishNames)
	if !ok {
		return nlu.Fallback
	}

	return "Did you mean **" + m + "**? Ask me about it for prices and details."
}
