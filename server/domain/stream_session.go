package domain

import (
	"time"
)

// StreamSession is a transport-level connection as seen by the hub.
type StreamSession struct {
	ID          string
	Remote      string
	Transport   string
	OwnerToken  string
	ConnectedAt time.Time
}

func NewStreamSession(id, remote, transport, ownerToken string) StreamSession {
	return StreamSession{
		ID:          id,
		Remote:      remote,
		Transport:   transport,
		OwnerToken:  ownerToken,
		ConnectedAt: time.Now(),
	}
}

func (s StreamSession) IsValid() bool {
	return s.ID != ""
}

func (s StreamSession) String() string {
	return s.ID + "@" + s.Remote + "(" + s.Transport + ")"
}
