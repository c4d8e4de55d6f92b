package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStreamRequestType(t *testing.T) {
	for _, name := range []string{"user_join", "join_room", "create_room", "send_message", "private_message", "typing",
		"add_reaction", "remove_reaction", "mark_read", "search_messages", "get_messages", "clear_unread"} {
		typ, ok := ParseStreamRequestType(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, typ.String())
	}

	_, ok := ParseStreamRequestType("disconnect")
	assert.False(t, ok)
	_, ok = ParseStreamRequestType("shutdown")
	assert.False(t, ok)
}

func TestParseStreamEventType(t *testing.T) {
	typ, ok := ParseStreamEventType("paginated_messages")
	assert.True(t, ok)
	assert.Equal(t, EventPaginatedMessages, typ)

	_, ok = ParseStreamEventType("nope")
	assert.False(t, ok)
	assert.Equal(t, "unknown", StreamEventType(-1).String())
}

func TestStreamRequest_IsValid(t *testing.T) {
	tests := []struct {
		name    string
		request StreamRequest
		want    bool
	}{
		{name: "join without name", request: NewJoinRequest("", ""), want: true},
		{name: "change room", request: NewChangeRoomRequest("random"), want: true},
		{name: "change room empty", request: NewChangeRoomRequest(""), want: false},
		{name: "private without recipient", request: NewPrivateRequest("", "hi", nil), want: false},
		{name: "reaction without symbol", request: NewReactionRequest(true, "m1", "", ""), want: false},
		{name: "mark read", request: NewMarkReadRequest("m1", ""), want: true},
		{name: "mark read without id", request: NewMarkReadRequest("", ""), want: false},
		{name: "unknown type", request: StreamRequest{Type: StreamRequestType(99)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.request.IsValid())
		})
	}
}
