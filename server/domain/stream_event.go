package domain

import (
	"slices"
	"time"
)

type StreamEventType int

const (
	EventRoomList StreamEventType = iota
	EventUserList
	EventUserJoined
	EventUserLeft
	EventMessageHistory
	EventReceiveMessage
	EventPrivateMessage
	EventUnreadUpdate
	EventTypingUsers
	EventReactionAdded
	EventReactionRemoved
	EventMessageRead
	EventSearchResults
	EventPaginatedMessages
	EventRoomCreated
	EventRoomError
	EventError
)

var eventNames = [...]string{
	EventRoomList:          "room_list",
	EventUserList:          "user_list",
	EventUserJoined:        "user_joined",
	EventUserLeft:          "user_left",
	EventMessageHistory:    "message_history",
	EventReceiveMessage:    "receive_message",
	EventPrivateMessage:    "private_message",
	EventUnreadUpdate:      "unread_update",
	EventTypingUsers:       "typing_users",
	EventReactionAdded:     "reaction_added",
	EventReactionRemoved:   "reaction_removed",
	EventMessageRead:       "message_read",
	EventSearchResults:     "search_results",
	EventPaginatedMessages: "paginated_messages",
	EventRoomCreated:       "room_created",
	EventRoomError:         "room_error",
	EventError:             "error",
}

func (t StreamEventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

// ParseStreamEventType is the inverse of String.
func ParseStreamEventType(name string) (StreamEventType, bool) {
	i := slices.Index(eventNames[:], name)
	if i < 0 {
		return 0, false
	}
	return StreamEventType(i), true
}

// Outbound is one notification produced by the session engine. Targets are
// connection ids resolved at production time.
type Outbound struct {
	Targets []string
	Event   StreamEventType
	Payload any
}

func NewOutbound(event StreamEventType, payload any, targets ...string) Outbound {
	return Outbound{
		Targets: targets,
		Event:   event,
		Payload: payload,
	}
}

type PresencePayload struct {
	Username string `json:"username"`
	ID       string `json:"id"`
	RoomID   string `json:"roomId"`
}

type ReactionPayload struct {
	MessageID string `json:"messageId"`
	Reaction  string `json:"reaction"`
	UserID    string `json:"userId"`
}

type ReadPayload struct {
	MessageID string    `json:"messageId"`
	UserID    string    `json:"userId"`
	ReadAt    time.Time `json:"readAt"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
