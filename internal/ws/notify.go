package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type MatchesGeneratedEvent struct {
	Type      string `json:"type"`
	NewCount  int    `json:"new_count"`
	Timestamp string `json:"timestamp"`
}

type OutreachUpdatedEvent struct {
	Type           string `json:"type"`
	MatchID        string `json:"match_id"`
	OutreachStatus string `json:"outreach_status"`
	Timestamp      string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyMatchesGenerated(userID uuid.UUID, newCount int) {
	h := defaultHub.Load()
	if h == nil || userID == uuid.Nil {
		return
	}

	b, err := json.Marshal(MatchesGeneratedEvent{
		Type:      "matches_generated",
		NewCount:  newCount,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Send(userID, b)
}

func NotifyOutreachUpdated(userID, matchID uuid.UUID, status string) {
	h := defaultHub.Load()
	if h == nil || userID == uuid.Nil {
		return
	}

	b, err := json.Marshal(OutreachUpdatedEvent{
		Type:           "outreach_updated",
		MatchID:        matchID.String(),
		OutreachStatus: status,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Send(userID, b)
}
