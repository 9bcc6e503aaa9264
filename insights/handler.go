package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/imkonsowa/restaurant-chatbot/events"
	"github.com/imkonsowa/restaurant-chatbot/nlu"
)

type Count struct {
	Text  string
	Count int
}

// Handler tallies turn events: how often each intent fires and which
// messages the bot failed to understand.
type Handler struct {
	mu         sync.Mutex
	intents    map[string]int
	unanswered map[string]int
	topics     map[string]int
}

func NewHandler() *Handler {
	return &Handler{
		intents:    make(map[string]int),
		unanswered: make(map[string]int),
		topics:     make(map[string]int),
	}
}

func (h *Handler) HandleTurnMessage(_ context.Context, msg []byte) error {
	var ev events.TurnEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		return fmt.Errorf("failed to unmarshal turn event: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.intents[ev.Intent]++
	if ev.Intent == string(nlu.Unknown) {
		if text := nlu.Normalize(ev.Message); text != "" {
			h.unanswered[text]++
		}
	}
	if ev.TopicName != "" {
		h.topics[ev.TopicName]++
	}

	return nil
}

func top(counts map[string]int, n int) []Count {
	out := make([]Count, 0, len(counts))
	for text, c := range counts {
		out = append(out, Count{Text: text, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Text < out[j].Text
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}

	return out
}

func (h *Handler) TopUnanswered(n int) []Count {
	h.mu.Lock()
	defer h.mu.Unlock()

	return top(h.unanswered, n)
}

func (h *Handler) TopTopics(n int) []Count {
	h.mu.Lock()
	defer h.mu.Unlock()

	return top(h.topics, n)
}

func (h *Handler) Intents() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]int, len(h.intents))
	for k, v := range h.intents {
		out[k] = v
	}

	return out
}

func (h *Handler) Report(n int) {
	slog.Info("conversation insights", "intents", h.Intents())
	for _, c := range h.TopUnanswered(n) {
		slog.Info("unanswered question", "text", c.Text, "count", c.Count)
	}
	for _, c := range h.TopTopics(n) {
		slog.Info("popular topic", "name", c.Text, "count", c.Count)
	}
}
