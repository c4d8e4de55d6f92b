package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
)

var (
	ErrUnknownRequest = errors.New("unknown request type")
	ErrInvalidRequest = errors.New("invalid request")
)

// convertFrameToDomainRequest decodes a client frame shared by the gRPC and
// WebSocket transports.
func convertFrameToDomainRequest(frame chatpb.ClientFrame) (domain.StreamRequest, error) {
	requestType, ok := domain.ParseStreamRequestType(frame.Type)
	if !ok {
		return domain.StreamRequest{}, fmt.Errorf("%w: %q", ErrUnknownRequest, frame.Type)
	}

	var request domain.StreamRequest
	var err error
	switch requestType {
	case domain.RequestJoin:
		var p chatpb.JoinPayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewJoinRequest(p.Username, p.RoomID)
	case domain.RequestChangeRoom:
		var room string
		room, err = decodeRoomName(frame.Payload)
		request = domain.NewChangeRoomRequest(room)
	case domain.RequestCreateRoom:
		var room string
		room, err = decodeRoomName(frame.Payload)
		request = domain.NewCreateRoomRequest(room)
	case domain.RequestSendMessage:
		var p chatpb.SendMessagePayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewChatRequest(p.Message, p.FileData)
	case domain.RequestPrivateMessage:
		var p chatpb.PrivateMessagePayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewPrivateRequest(p.To, p.Message, p.FileData)
	case domain.RequestTyping:
		var p chatpb.TypingPayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewTypingRequest(p.IsTyping, p.RoomID)
	case domain.RequestAddReaction, domain.RequestRemoveReaction:
		var p chatpb.ReactionPayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewReactionRequest(requestType == domain.RequestAddReaction, p.MessageID, p.Reaction, p.RoomID)
	case domain.RequestMarkRead:
		var p chatpb.MarkReadPayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewMarkReadRequest(p.MessageID, p.RoomID)
	case domain.RequestSearch:
		var p chatpb.SearchPayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewSearchRequest(p.Query, p.RoomID)
	case domain.RequestPaginate:
		var p chatpb.PagePayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewPageRequest(p.RoomID, p.Page, p.Limit)
	case domain.RequestClearUnread:
		var p chatpb.ClearUnreadPayload
		err = decodePayload(frame.Payload, &p)
		request = domain.NewClearUnreadRequest(p.RoomID)
	default:
		return domain.StreamRequest{}, fmt.Errorf("%w: %q", ErrUnknownRequest, frame.Type)
	}
	if err != nil {
		return domain.StreamRequest{}, fmt.Errorf("%w: %s payload: %w", ErrInvalidRequest, frame.Type, err)
	}
	if !request.IsValid() {
		return domain.StreamRequest{}, fmt.Errorf("%w: %s", ErrInvalidRequest, request)
	}
	return request, nil
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}

// decodeRoomName accepts either a bare JSON string or {"roomId"} / {"name"}.
func decodeRoomName(raw json.RawMessage) (string, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name, nil
	}
	var p chatpb.RoomPayload
	if err := decodePayload(raw, &p); err != nil {
		return "", err
	}
	if p.RoomID != "" {
		return p.RoomID, nil
	}
	return p.Name, nil
}

func convertDomainResponseToFrame(response domain.StreamResponse) (chatpb.ServerFrame, error) {
	return chatpb.NewServerFrame(response.Event.String(), response.Payload)
}
