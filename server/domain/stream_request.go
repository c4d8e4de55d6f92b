package domain

import "slices"

type StreamRequestType int

const (
	RequestJoin StreamRequestType = iota
	RequestChangeRoom
	RequestCreateRoom
	RequestSendMessage
	RequestPrivateMessage
	RequestTyping
	RequestAddReaction
	RequestRemoveReaction
	RequestMarkRead
	RequestSearch
	RequestPaginate
	RequestClearUnread
	RequestDisconnect
)

var requestNames = [...]string{
	RequestJoin:           "user_join",
	RequestChangeRoom:     "join_room",
	RequestCreateRoom:     "create_room",
	RequestSendMessage:    "send_message",
	RequestPrivateMessage: "private_message",
	RequestTyping:         "typing",
	RequestAddReaction:    "add_reaction",
	RequestRemoveReaction: "remove_reaction",
	RequestMarkRead:       "mark_read",
	RequestSearch:         "search_messages",
	RequestPaginate:       "get_messages",
	RequestClearUnread:    "clear_unread",
	RequestDisconnect:     "disconnect",
}

func (t StreamRequestType) String() string {
	if t < 0 || int(t) >= len(requestNames) {
		return "unknown"
	}
	return requestNames[t]
}

func ParseStreamRequestType(name string) (StreamRequestType, bool) {
	i := slices.Index(requestNames[:], name)
	if i < 0 || StreamRequestType(i) == RequestDisconnect {
		return 0, false
	}
	return StreamRequestType(i), true
}

// StreamRequest is a decoded client action. Only the fields relevant to Type
// are set. Content rules such as empty messages or bad room names are left to
// the session engine; IsValid only checks that addressing fields are present.
type StreamRequest struct {
	Type       StreamRequestType
	Name       string
	RoomID     string
	Text       string
	Attachment *Attachment
	To         string
	MessageID  string
	Reaction   string
	IsTyping   bool
	Query      string
	Page       int
	Limit      int
}

func NewJoinRequest(name, roomID string) StreamRequest {
	return StreamRequest{Type: RequestJoin, Name: name, RoomID: roomID}
}

func NewChangeRoomRequest(roomID string) StreamRequest {
	return StreamRequest{Type: RequestChangeRoom, RoomID: roomID}
}

func NewCreateRoomRequest(name string) StreamRequest {
	return StreamRequest{Type: RequestCreateRoom, RoomID: name}
}

func NewChatRequest(text string, attachment *Attachment) StreamRequest {
	return StreamRequest{Type: RequestSendMessage, Text: text, Attachment: attachment}
}

func NewPrivateRequest(to, text string, attachment *Attachment) StreamRequest {
	return StreamRequest{Type: RequestPrivateMessage, To: to, Text: text, Attachment: attachment}
}

func NewTypingRequest(isTyping bool, roomID string) StreamRequest {
	return StreamRequest{Type: RequestTyping, IsTyping: isTyping, RoomID: roomID}
}

func NewReactionRequest(add bool, messageID, reaction, roomID string) StreamRequest {
	t := RequestRemoveReaction
	if add {
		t = RequestAddReaction
	}
	return StreamRequest{Type: t, MessageID: messageID, Reaction: reaction, RoomID: roomID}
}

func NewMarkReadRequest(messageID, roomID string) StreamRequest {
	return StreamRequest{Type: RequestMarkRead, MessageID: messageID, RoomID: roomID}
}

func NewSearchRequest(query, roomID string) StreamRequest {
	return StreamRequest{Type: RequestSearch, Query: query, RoomID: roomID}
}

func NewPageRequest(roomID string, page, limit int) StreamRequest {
	return StreamRequest{Type: RequestPaginate, RoomID: roomID, Page: page, Limit: limit}
}

func NewClearUnreadRequest(bucket string) StreamRequest {
	return StreamRequest{Type: RequestClearUnread, RoomID: bucket}
}

func NewDisconnectRequest() StreamRequest {
	return StreamRequest{Type: RequestDisconnect}
}

func (r StreamRequest) IsValid() bool {
	switch r.Type {
	case RequestJoin, RequestCreateRoom, RequestSendMessage, RequestTyping, RequestSearch, RequestPaginate, RequestClearUnread, RequestDisconnect:
		return true
	case RequestChangeRoom:
		return r.RoomID != ""
	case RequestPrivateMessage:
		return r.To != ""
	case RequestAddReaction, RequestRemoveReaction:
		return r.MessageID != "" && r.Reaction != ""
	case RequestMarkRead:
		return r.MessageID != ""
	default:
		return false
	}
}

func (r StreamRequest) String() string {
	switch r.Type {
	case RequestJoin:
		return r.Type.String() + ": " + r.Name + " -> " + r.RoomID
	case RequestChangeRoom, RequestCreateRoom:
		return r.Type.String() + ": " + r.RoomID
	case RequestSendMessage:
		return r.Type.String() + ": " + r.Text
	case RequestPrivateMessage:
		return r.Type.String() + ": " + r.To + " <- " + r.Text
	default:
		return r.Type.String()
	}
}
