package domain

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Hub owns the response channel of every live session. Sends never block:
// a full or missing channel drops the response.
type Hub struct {
	mu            sync.RWMutex
	sessions      map[string]StreamSession
	responseChans map[string]chan<- StreamResponse
	delivered     atomic.Int64
	dropped       atomic.Int64
	startTime     time.Time
}

func NewHub() *Hub {
	return &Hub{
		sessions:      make(map[string]StreamSession),
		responseChans: make(map[string]chan<- StreamResponse),
		startTime:     time.Now(),
	}
}

func (h *Hub) RegisterSession(session StreamSession, responseChan chan<- StreamResponse) error {
	if !session.IsValid() {
		return fmt.Errorf("invalid session: %s", session)
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.responseChans[session.ID]; exists {
		return fmt.Errorf("register %s: %w", session.ID, ErrSessionRegistered)
	}
	h.sessions[session.ID] = session
	h.responseChans[session.ID] = responseChan
	return nil
}

// UnregisterSession must run before the session's channel is closed.
func (h *Hub) UnregisterSession(sessionID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.responseChans[sessionID]; !exists {
		return fmt.Errorf("session not registered: %s", sessionID)
	}
	delete(h.sessions, sessionID)
	delete(h.responseChans, sessionID)
	return nil
}

// Deliver fans every outbound out to its targets and returns how many
// responses were queued.
func (h *Hub) Deliver(outbounds []Outbound) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	queued := 0
	for _, out := range outbounds {
		response := NewStreamResponse(out.Event, out.Payload)
		for _, target := range out.Targets {
			if h.send(target, response) {
				queued++
			}
		}
	}
	return queued
}

func (h *Hub) send(sessionID string, response StreamResponse) bool {
	responseChan, exists := h.responseChans[sessionID]
	if !exists {
		h.dropped.Add(1)
		return false
	}
	select {
	case responseChan <- response:
		h.delivered.Add(1)
		return true
	default:
		h.dropped.Add(1)
		return false
	}
}

func (h *Hub) SendToSession(sessionID string, response StreamResponse) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, exists := h.responseChans[sessionID]; !exists {
		return fmt.Errorf("session not registered: %s", sessionID)
	}
	if !h.send(sessionID, response) {
		return fmt.Errorf("session response channel is full")
	}
	return nil
}

func (h *Hub) GetSession(sessionID string) (StreamSession, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	session, exists := h.sessions[sessionID]
	return session, exists
}

func (h *Hub) IsSessionRegistered(sessionID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, exists := h.responseChans[sessionID]
	return exists
}

func (h *Hub) GetRegisteredSessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.responseChans)
}

func (h *Hub) GetStats() StreamStats {
	return StreamStats{
		ActiveSessions: h.GetRegisteredSessionCount(),
		Delivered:      h.delivered.Load(),
		Dropped:        h.dropped.Load(),
		Uptime:         time.Since(h.startTime).String(),
	}
}
