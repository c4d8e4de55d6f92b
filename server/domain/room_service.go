package domain

// MessageBroadcaster routes engine output to the sessions that are still
// connected.
type MessageBroadcaster interface {
	Deliver(outbounds []Outbound) int
	SendToSession(sessionID string, response StreamResponse) error

	RegisterSession(session StreamSession, responseChan chan<- StreamResponse) error
	UnregisterSession(sessionID string) error

	IsSessionRegistered(sessionID string) bool
	GetRegisteredSessionCount() int
	GetStats() StreamStats
}

type StreamStats struct {
	ActiveSessions int
	Delivered      int64
	Dropped        int64
	Uptime         string
}

// ServerStatus summarizes the running server for status endpoints.
type ServerStatus struct {
	Rooms          int
	ConnectedUsers int
	Messages       int
	Stream         StreamStats
}
