package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/imkonsowa/restaurant-chatbot/config"
	"github.com/imkonsowa/restaurant-chatbot/dataset"
	"github.com/imkonsowa/restaurant-chatbot/events"
	"github.com/imkonsowa/restaurant-chatbot/responder"
	"github.com/imkonsowa/restaurant-chatbot/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.TurnEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.TurnEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) Close() {}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{
			CookieName:     "session_id",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}
}

func newTestAgent(t *testing.T, ready bool) (*Agent, *recordingPublisher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	publisher := &recordingPublisher{}
	handler := NewHandler(session.NewMemoryStore(time.Hour), publisher)
	if ready {
		ds, err := dataset.LoadDir("../data")
		require.NoError(t, err)
		handler.SetRenderer(responder.New(ds))
	}

	return NewAgent(testConfig(), handler), publisher
}

func post(t *testing.T, router http.Handler, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == "session_id" {
			assert.True(t, c.HttpOnly)
			return c
		}
	}
	t.Fatal("session cookie not set")

	return nil
}

func TestChat(t *testing.T) {
	agent, publisher := newTestAgent(t, true)
	router := agent.Router()

	w := post(t, router, "/chat", `{"message": "where are your branches"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var first ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Contains(t, first.Response, "Gulberg Branch")
	assert.NotContains(t, first.Response, "already viewed")
	assert.True(t, first.SessionFlags["shown_branches"])
	assert.False(t, first.SessionFlags["shown_menu"])

	cookie := sessionCookie(t, w)

	w = post(t, router, "/chat", `{"message": "where are your branches"}`, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var second ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.True(t, strings.HasPrefix(second.Response, "You've already viewed this"))
	assert.Equal(t, cookie.Value, sessionCookie(t, w).Value)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, "branch_query", publisher.events[0].Intent)
	assert.Equal(t, cookie.Value, publisher.events[1].Session)
}

func TestChatReplacesForeignSessionID(t *testing.T) {
	agent, _ := newTestAgent(t, true)

	w := post(t, agent.Router(), "/chat", `{"message": "hi"}`, &http.Cookie{Name: "session_id", Value: "not-a-uuid"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "not-a-uuid", sessionCookie(t, w).Value)
}

func TestChatBadRequest(t *testing.T) {
	agent, _ := newTestAgent(t, true)

	w := post(t, agent.Router(), "/chat", `{"message": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatStartingUp(t *testing.T) {
	agent, publisher := newTestAgent(t, false)
	router := agent.Router()

	w := post(t, router, "/chat", `{"message": "hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response": "`+StartingUpReply+`"}`, w.Body.String())

	w = post(t, router, "/api/query", `{"message": "hi"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer": "`+StartingUpReply+`", "actions": []}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	assert.Empty(t, publisher.events)
}

func TestQuery(t *testing.T) {
	agent, _ := newTestAgent(t, true)

	w := post(t, agent.Router(), "/api/query", `{"message": "Hello!"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp QueryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Answer)
	assert.Equal(t, []string{"View Menu", "Our Branches", "Opening Hours"}, resp.Actions)
	sessionCookie(t, w)
}

func TestSessionEndpoint(t *testing.T) {
	agent, _ := newTestAgent(t, true)
	router := agent.Router()

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	chat := post(t, router, "/chat", `{"message": "price of zinger burger"}`)
	cookie := sessionCookie(t, chat)

	req = httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Zinger Burger", resp.LastTopic)
	assert.False(t, resp.SessionFlags["shown_menu"])
}

func TestCORS(t *testing.T) {
	agent, _ := newTestAgent(t, true)

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	agent.Router().ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestWebSocket(t *testing.T) {
	agent, _ := newTestAgent(t, true)
	srv := httptest.NewServer(agent.Router())
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello WebSocketsMessage
	require.NoError(t, conn.ReadJSON(&hello))
	assert.Equal(t, "session", hello.Type)
	assert.NotEmpty(t, hello.Data)

	for i, want := range []string{"OPENING HOURS", "You've already viewed this"} {
		require.NoError(t, conn.WriteJSON(ChatRequest{Message: "what are your hours"}))

		var msg struct {
			Type string       `json:"type"`
			Data ChatResponse `json:"data"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, "chat", msg.Type)
		assert.Contains(t, msg.Data.Response, want, "turn %d", i)
		assert.True(t, msg.Data.SessionFlags["shown_hours"])
	}
}
