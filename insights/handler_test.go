package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/imkonsowa/restaurant-chatbot/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(t *testing.T, h *Handler, ev events.TurnEvent) {
	t.Helper()

	data, err := json.Marshal(ev)
	require.NoError(t, err)
	require.NoError(t, h.HandleTurnMessage(context.Background(), data))
}

func TestHandlerTallies(t *testing.T) {
	h := NewHandler()

	send(t, h, events.TurnEvent{Intent: "unknown", Message: "Do you sell sushi?"})
	send(t, h, events.TurnEvent{Intent: "unknown", Message: "do you sell SUSHI"})
	send(t, h, events.TurnEvent{Intent: "unknown", Message: "quantum physics"})
	send(t, h, events.TurnEvent{Intent: "unknown", Message: "?!"})
	send(t, h, events.TurnEvent{Intent: "menu_query", Message: "zinger", TopicKind: "dish", TopicName: "Zinger Burger"})
	send(t, h, events.TurnEvent{Intent: "menu_query", Message: "zinger burger price", TopicKind: "dish", TopicName: "Zinger Burger"})

	assert.Equal(t, []Count{
		{Text: "do you sell sushi", Count: 2},
		{Text: "quantum physics", Count: 1},
	}, h.TopUnanswered(10))
	assert.Equal(t, []Count{{Text: "do you sell sushi", Count: 2}}, h.TopUnanswered(1))

	assert.Equal(t, []Count{{Text: "Zinger Burger", Count: 2}}, h.TopTopics(5))
	assert.Equal(t, map[string]int{"unknown": 4, "menu_query": 2}, h.Intents())

	h.Report(3)
}

func TestHandlerRejectsGarbage(t *testing.T) {
	h := NewHandler()

	assert.Error(t, h.HandleTurnMessage(context.Background(), []byte("{")))
	assert.Empty(t, h.Intents())
}
