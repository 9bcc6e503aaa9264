package main

const StartingUpReply = "Service starting up, please try again in a moment."

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response     string          `json:"response"`
	SessionFlags map[string]bool `json:"sessionFlags,omitempty"`
}

type QueryResponse struct {
	Answer  string   `json:"answer"`
	Actions []string `json:"actions"`
}

type SessionResponse struct {
	SessionFlags map[string]bool `json:"sessionFlags"`
	LastTopic    string          `json:"lastTopic,omitempty"`
}

type WebSocketsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
