// Package session keeps per-conversation state between turns.
package session

import "time"

// Topic is the last catalog entry a conversation resolved, stored by kind and
// name so it can be looked up again in the catalog.
type Topic struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type Session struct {
	ID            string    `json:"id"`
	ShownMenu     int       `json:"shown_menu"`
	ShownHours    int       `json:"shown_hours"`
	ShownBranches int       `json:"shown_branches"`
	ShownDelivery int       `json:"shown_delivery"`
	LastTopic     *Topic    `json:"last_topic,omitempty"`
	FAQFollowup   bool      `json:"faq_followup"` // reserved
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func New(id string, now time.Time) *Session {
	return &Session{ID: id, CreatedAt: now, UpdatedAt: now}
}

// Flags reports which views the user has already seen, for the UI to hide the
// matching quick-reply buttons.
func (s *Session) Flags() map[string]bool {
	return map[string]bool{
		"shown_menu":     s.ShownMenu > 0,
		"shown_hours":    s.ShownHours > 0,
		"shown_branches": s.ShownBranches > 0,
		"shown_delivery": s.ShownDelivery > 0,
	}
}

func (s *Session) clone() *Session {
	cp := *s
	if s.LastTopic != nil {
		topic := *s.LastTopic
		cp.LastTopic = &topic
	}

	return &cp
}
