package chatpb

import (
	"encoding/json"
	"fmt"

	"github.com/ponyo877/chatroom/server/domain"
)

// ClientFrame is one client action on a stream. Payload is the JSON body of
// the action and may be a bare string for join_room and create_room.
type ClientFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewClientFrame(typ string, payload any) (ClientFrame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ClientFrame{}, fmt.Errorf("error encoding %s payload: %w", typ, err)
	}
	return ClientFrame{Type: typ, Payload: raw}, nil
}

// ServerFrame is one event pushed to a stream.
type ServerFrame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func NewServerFrame(event string, payload any) (ServerFrame, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ServerFrame{}, fmt.Errorf("error encoding %s payload: %w", event, err)
	}
	return ServerFrame{Event: event, Payload: raw}, nil
}

func (f ServerFrame) DecodePayload(v any) error {
	if len(f.Payload) == 0 {
		return nil
	}
	return json.Unmarshal(f.Payload, v)
}

type JoinPayload struct {
	Username string `json:"username"`
	RoomID   string `json:"roomId,omitempty"`
}

type RoomPayload struct {
	RoomID string `json:"roomId,omitempty"`
	Name   string `json:"name,omitempty"`
}

type SendMessagePayload struct {
	Message  string             `json:"message"`
	FileData *domain.Attachment `json:"fileData,omitempty"`
}

type PrivateMessagePayload struct {
	To       string             `json:"to"`
	Message  string             `json:"message"`
	FileData *domain.Attachment `json:"fileData,omitempty"`
}

type TypingPayload struct {
	IsTyping bool   `json:"isTyping"`
	RoomID   string `json:"roomId,omitempty"`
}

type ReactionPayload struct {
	MessageID string `json:"messageId"`
	Reaction  string `json:"reaction"`
	RoomID    string `json:"roomId,omitempty"`
}

type MarkReadPayload struct {
	MessageID string `json:"messageId"`
	RoomID    string `json:"roomId,omitempty"`
}

type SearchPayload struct {
	Query  string `json:"query"`
	RoomID string `json:"roomId,omitempty"`
}

type PagePayload struct {
	RoomID string `json:"roomId,omitempty"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit,omitempty"`
}

type ClearUnreadPayload struct {
	RoomID string `json:"roomId,omitempty"`
}

// Unary request and response bodies.

type ListRoomsRequest struct {
	Pattern string `json:"pattern,omitempty"`
}

type ListRoomsResponse struct {
	Rooms []string `json:"rooms"`
}

type ListUsersRequest struct {
	Room string `json:"room,omitempty"`
}

type ListUsersResponse struct {
	Users []domain.UserInfo `json:"users"`
}

type ListMessagesRequest struct {
	Room  string `json:"room"`
	Page  int    `json:"page"`
	Limit int    `json:"limit,omitempty"`
}

type SearchMessagesRequest struct {
	Room  string `json:"room"`
	Query string `json:"query"`
}

type SearchMessagesResponse struct {
	Messages []domain.Message `json:"messages"`
}

type CreateRoomRequest struct {
	Name string `json:"name"`
}

type CreateRoomResponse struct {
	Name string `json:"name"`
}

type GetConfigRequest struct {
	OwnerToken string `json:"ownerToken"`
}

type ConfigResponse struct {
	OwnerToken  string `json:"ownerToken"`
	DisplayName string `json:"displayName"`
}

type SetConfigRequest struct {
	OwnerToken  string `json:"ownerToken"`
	DisplayName string `json:"displayName"`
}
