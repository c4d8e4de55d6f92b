package usecase

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ponyo877/chatroom/server/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts ...EngineOption) *SessionEngine {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	clock := func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}
	return NewSessionEngine(append([]EngineOption{WithClock(clock)}, opts...)...)
}

func find(outbounds []domain.Outbound, event domain.StreamEventType) []domain.Outbound {
	var found []domain.Outbound
	for _, out := range outbounds {
		if out.Event == event {
			found = append(found, out)
		}
	}
	return found
}

func only(t *testing.T, outbounds []domain.Outbound, event domain.StreamEventType) domain.Outbound {
	t.Helper()
	found := find(outbounds, event)
	require.Len(t, found, 1, "expected exactly one %s", event)
	return found[0]
}

func join(t *testing.T, e *SessionEngine, id, name, room string) []domain.Outbound {
	t.Helper()
	return e.Handle(id, domain.NewJoinRequest(name, room))
}

func send(t *testing.T, e *SessionEngine, id, text string) domain.Message {
	t.Helper()
	out := only(t, e.Handle(id, domain.NewChatRequest(text, nil)), domain.EventReceiveMessage)
	msg, ok := out.Payload.(domain.Message)
	require.True(t, ok)
	return msg
}

func unreadFor(t *testing.T, outbounds []domain.Outbound, id string) (map[string]int, bool) {
	t.Helper()
	for _, out := range find(outbounds, domain.EventUnreadUpdate) {
		if len(out.Targets) == 1 && out.Targets[0] == id {
			return out.Payload.(map[string]int), true
		}
	}
	return nil, false
}

func TestSessionEngine_Join(t *testing.T) {
	e := newTestEngine(t)

	out := join(t, e, "a", "alice", "")
	assert.Equal(t, []string{"a"}, only(t, out, domain.EventRoomList).Targets)
	assert.Equal(t, []string{"general"}, only(t, out, domain.EventRoomList).Payload)
	joined := only(t, out, domain.EventUserJoined)
	assert.Equal(t, []string{"a"}, joined.Targets)
	assert.Equal(t, domain.PresencePayload{Username: "alice", ID: "a", RoomID: "general"}, joined.Payload)
	assert.Equal(t, []string{"a"}, only(t, out, domain.EventMessageHistory).Targets)

	out = join(t, e, "b", "bob", "general")
	users := only(t, out, domain.EventUserList)
	assert.Equal(t, []string{"a", "b"}, users.Targets)
	assert.Len(t, users.Payload, 2)
}

func TestSessionEngine_JoinRejectsEmptyName(t *testing.T) {
	e := newTestEngine(t)

	out := join(t, e, "a", "   ", "general")
	errOut := only(t, out, domain.EventError)
	assert.Equal(t, []string{"a"}, errOut.Targets)
	assert.Empty(t, e.Users())
}

func TestSessionEngine_JoinHistoryLimit(t *testing.T) {
	e := newTestEngine(t, WithHistoryLimit(3))
	join(t, e, "a", "alice", "general")
	for _, text := range []string{"1", "2", "3", "4", "5"} {
		send(t, e, "a", text)
	}

	out := join(t, e, "b", "bob", "general")
	history := only(t, out, domain.EventMessageHistory).Payload.([]domain.Message)
	require.Len(t, history, 3)
	assert.Equal(t, "3", history[0].Text)
	assert.Equal(t, "5", history[2].Text)
}

func TestSessionEngine_JoinUnknownRoom(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")

	out := join(t, e, "b", "bob", "dev")
	rooms := find(out, domain.EventRoomList)
	require.Len(t, rooms, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, rooms[0].Targets)
	assert.Equal(t, []string{"general", "dev"}, rooms[0].Payload)
	assert.Equal(t, "dev", only(t, out, domain.EventRoomCreated).Payload)

	out = join(t, e, "c", "carol", strings.Repeat("x", domain.MaxRoomNameLength+1))
	assert.Equal(t, "general", only(t, out, domain.EventUserJoined).Payload.(domain.PresencePayload).RoomID)
}

func TestSessionEngine_RejoinMovesRoom(t *testing.T) {
	e := newTestEngine(t, WithRooms("dev"))
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "general")

	out := join(t, e, "a", "alice", "dev")
	lists := find(out, domain.EventUserList)
	require.Len(t, lists, 2)
	assert.Equal(t, []string{"b"}, lists[0].Targets)
	assert.Equal(t, []string{"a"}, lists[1].Targets)
	assert.Len(t, e.UsersInRoom("general"), 1)
}

func TestSessionEngine_ChangeRoom(t *testing.T) {
	e := newTestEngine(t, WithRooms("dev"))

	assert.Empty(t, e.Handle("a", domain.NewChangeRoomRequest("dev")))

	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "general")
	e.Handle("a", domain.NewTypingRequest(true, ""))

	out := e.Handle("a", domain.NewChangeRoomRequest("dev"))
	typing := only(t, out, domain.EventTypingUsers)
	assert.Equal(t, []string{"b"}, typing.Targets)
	assert.Equal(t, []string{}, typing.Payload)
	lists := find(out, domain.EventUserList)
	require.Len(t, lists, 2)
	assert.Equal(t, []string{"b"}, lists[0].Targets)
	assert.Equal(t, []string{"a"}, lists[1].Targets)
	assert.Equal(t, []string{"a"}, only(t, out, domain.EventUserJoined).Targets)
	assert.Equal(t, []string{"a"}, only(t, out, domain.EventMessageHistory).Targets)

	out = e.Handle("a", domain.NewChangeRoomRequest("dev"))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventMessageHistory, out[0].Event)

	out = e.Handle("a", domain.NewChangeRoomRequest(strings.Repeat("x", domain.MaxRoomNameLength+1)))
	assert.Equal(t, []string{"a"}, only(t, out, domain.EventError).Targets)

	out = e.Handle("a", domain.NewChangeRoomRequest("ops"))
	assert.Equal(t, "ops", only(t, out, domain.EventRoomCreated).Payload)
	assert.ElementsMatch(t, []string{"a", "b"}, only(t, out, domain.EventRoomList).Targets)
}

func TestSessionEngine_CreateRoom(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "general")

	out := e.Handle("c", domain.NewCreateRoomRequest("random"))
	rooms := only(t, out, domain.EventRoomList)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, rooms.Targets)
	created := only(t, out, domain.EventRoomCreated)
	assert.Equal(t, []string{"c"}, created.Targets)
	assert.Equal(t, "random", created.Payload)

	out = e.Handle("a", domain.NewCreateRoomRequest("general"))
	require.Len(t, out, 1)
	assert.Equal(t, domain.EventRoomError, out[0].Event)
	assert.Equal(t, []string{"a"}, out[0].Targets)
	assert.Equal(t, domain.ErrInvalidOrDuplicate.Error(), out[0].Payload.(domain.ErrorPayload).Message)
	assert.Equal(t, []string{"general", "random"}, e.Rooms())

	out = e.Handle("a", domain.NewCreateRoomRequest(""))
	assert.Equal(t, domain.EventRoomError, only(t, out, domain.EventRoomError).Event)
	assert.Empty(t, find(out, domain.EventRoomList))
}

func TestSessionEngine_CreateRoomDirect(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")

	hub := domain.NewHub()
	responses := make(chan domain.StreamResponse, 1)
	require.NoError(t, hub.RegisterSession(domain.NewStreamSession("a", "remote", "grpc", ""), responses))

	out, err := e.CreateRoomDirect("random", hub)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, only(t, out, domain.EventRoomList).Targets)
	assert.Equal(t, domain.EventRoomList, (<-responses).Event)

	_, err = e.CreateRoomDirect("random", hub)
	assert.ErrorIs(t, err, domain.ErrInvalidOrDuplicate)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestSessionEngine_SendMessageScenario(t *testing.T) {
	e := newTestEngine(t, WithRooms("dev"))
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "general")

	out := e.Handle("a", domain.NewChatRequest("hi", nil))
	received := only(t, out, domain.EventReceiveMessage)
	assert.Equal(t, []string{"a", "b"}, received.Targets)
	first := received.Payload.(domain.Message)
	assert.Equal(t, "alice", first.Sender)
	assert.Equal(t, "general", first.RoomID)
	_, ok := unreadFor(t, out, "b")
	assert.False(t, ok)

	e.Handle("b", domain.NewChangeRoomRequest("dev"))
	out = e.Handle("a", domain.NewChatRequest("bye", nil))
	snapshot, ok := unreadFor(t, out, "b")
	require.True(t, ok)
	assert.Equal(t, map[string]int{"general": 1}, snapshot)
	_, ok = unreadFor(t, out, "a")
	assert.False(t, ok)
}

func TestSessionEngine_SendMessageUnreadCounts(t *testing.T) {
	e := newTestEngine(t, WithRooms("dev"))
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "dev")
	join(t, e, "c", "carol", "dev")
	join(t, e, "d", "dave", "general")

	send(t, e, "a", "one")
	out := e.Handle("a", domain.NewChatRequest("two", nil))
	for _, id := range []string{"b", "c"} {
		snapshot, ok := unreadFor(t, out, id)
		require.True(t, ok)
		assert.Equal(t, 2, snapshot["general"])
	}
	_, ok := unreadFor(t, out, "d")
	assert.False(t, ok)

	e.Handle("b", domain.NewChatRequest("in dev", nil))
	out = e.Handle("b", domain.NewClearUnreadRequest("general"))
	snapshot, ok := unreadFor(t, out, "b")
	require.True(t, ok)
	assert.Equal(t, 0, snapshot["general"])

	out = e.Handle("a", domain.NewClearUnreadRequest(""))
	snapshot, ok = unreadFor(t, out, "a")
	require.True(t, ok)
	assert.Empty(t, snapshot)
}

func TestSessionEngine_SendMessageRejected(t *testing.T) {
	e := newTestEngine(t)

	assert.Empty(t, e.Handle("a", domain.NewChatRequest("hi", nil)))

	join(t, e, "a", "alice", "general")
	out := e.Handle("a", domain.NewChatRequest("", nil))
	assert.Equal(t, []string{"a"}, only(t, out, domain.EventError).Targets)
	assert.Equal(t, 0, e.Stats().Messages)

	out = e.Handle("a", domain.NewChatRequest("", &domain.Attachment{Name: "cat.png", Type: "image/png", Size: 10}))
	msg := only(t, out, domain.EventReceiveMessage).Payload.(domain.Message)
	assert.Equal(t, "cat.png", msg.Attachment.Name)
}

func TestSessionEngine_AttachmentSize(t *testing.T) {
	tests := []struct {
		name   string
		size   int64
		wantOK bool
	}{
		{name: "zero", size: 0, wantOK: true},
		{name: "largest exact", size: domain.MaxAttachmentSize, wantOK: true},
		{name: "beyond float64 precision", size: domain.MaxAttachmentSize + 2, wantOK: false},
		{name: "negative", size: -1, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			join(t, e, "a", "alice", "general")
			join(t, e, "b", "bob", "general")
			attachment := &domain.Attachment{Name: "disk.img", Type: "application/octet-stream", Size: tt.size}

			for _, req := range []domain.StreamRequest{
				domain.NewChatRequest("", attachment),
				domain.NewPrivateRequest("b", "", attachment),
			} {
				out := e.Handle("a", req)
				if tt.wantOK {
					assert.Empty(t, find(out, domain.EventError), req.Type)
					continue
				}
				rejected := only(t, out, domain.EventError)
				assert.Equal(t, []string{"a"}, rejected.Targets)
				assert.Contains(t, rejected.Payload.(domain.ErrorPayload).Message, "out of range")
			}
			want := 0
			if tt.wantOK {
				want = 1
			}
			assert.Equal(t, want, e.Stats().Messages)
		})
	}
}

func TestSessionEngine_SendMessageClearsTyping(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "general")

	out := e.Handle("a", domain.NewTypingRequest(true, ""))
	assert.Equal(t, []string{"alice"}, only(t, out, domain.EventTypingUsers).Payload)

	out = e.Handle("a", domain.NewChatRequest("done", nil))
	assert.Equal(t, []string{}, only(t, out, domain.EventTypingUsers).Payload)

	out = e.Handle("a", domain.NewChatRequest("again", nil))
	assert.Empty(t, find(out, domain.EventTypingUsers))
}

func TestSessionEngine_SendPrivate(t *testing.T) {
	e := newTestEngine(t, WithRooms("dev"))
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "dev")

	out := e.Handle("a", domain.NewPrivateRequest("b", "psst", nil))
	private := only(t, out, domain.EventPrivateMessage)
	assert.Equal(t, []string{"a", "b"}, private.Targets)
	msg := private.Payload.(domain.Message)
	assert.True(t, msg.Private)
	assert.Equal(t, "b", msg.RecipientID)
	assert.NotEmpty(t, msg.ID)
	snapshot, ok := unreadFor(t, out, "b")
	require.True(t, ok)
	assert.Equal(t, map[string]int{domain.PrivateBucket: 1}, snapshot)
	assert.Equal(t, 0, e.Stats().Messages)

	assert.Empty(t, e.Handle("a", domain.NewPrivateRequest("ghost", "psst", nil)))

	out = e.Handle("a", domain.NewPrivateRequest("a", "note to self", nil))
	assert.Equal(t, []string{"a"}, only(t, out, domain.EventPrivateMessage).Targets)
}

func TestSessionEngine_Typing(t *testing.T) {
	e := newTestEngine(t, WithRooms("dev"))
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "dev")

	out := e.Handle("a", domain.NewTypingRequest(true, "dev"))
	typing := only(t, out, domain.EventTypingUsers)
	assert.Equal(t, []string{"b"}, typing.Targets)
	assert.Equal(t, []string{"alice"}, typing.Payload)

	out = e.Handle("a", domain.NewTypingRequest(true, "dev"))
	assert.Len(t, find(out, domain.EventTypingUsers), 1)

	assert.Empty(t, e.Handle("a", domain.NewTypingRequest(true, "nowhere")))
}

func TestSessionEngine_ReactionScenario(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")
	join(t, e, "c", "carol", "general")
	m := send(t, e, "a", "react to me")

	out := e.Handle("c", domain.NewReactionRequest(true, m.ID, "👍", ""))
	added := only(t, out, domain.EventReactionAdded)
	assert.Equal(t, []string{"a", "c"}, added.Targets)
	assert.Equal(t, domain.ReactionPayload{MessageID: m.ID, Reaction: "👍", UserID: "c"}, added.Payload)

	assert.Empty(t, e.Handle("c", domain.NewReactionRequest(true, m.ID, "👍", "")))

	page, err := e.Page("general", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, page.Messages[0].Reactions["👍"])

	out = e.Handle("c", domain.NewReactionRequest(false, m.ID, "👍", ""))
	assert.Len(t, find(out, domain.EventReactionRemoved), 1)
	assert.Empty(t, e.Handle("c", domain.NewReactionRequest(false, m.ID, "👍", "")))

	page, err = e.Page("general", 0, 50)
	require.NoError(t, err)
	assert.Empty(t, page.Messages[0].Reactions["👍"])

	out = e.Handle("c", domain.NewReactionRequest(true, "missing", "👍", ""))
	assert.Equal(t, []string{"c"}, only(t, out, domain.EventError).Targets)
}

func TestSessionEngine_MarkRead(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "general")
	m := send(t, e, "a", "read me")

	first := only(t, e.Handle("b", domain.NewMarkReadRequest(m.ID, "")), domain.EventMessageRead).Payload.(domain.ReadPayload)
	second := only(t, e.Handle("b", domain.NewMarkReadRequest(m.ID, "")), domain.EventMessageRead).Payload.(domain.ReadPayload)
	assert.True(t, second.ReadAt.After(first.ReadAt))

	page, err := e.Page("general", 0, 50)
	require.NoError(t, err)
	assert.Len(t, page.Messages[0].ReadBy, 1)
	assert.Equal(t, second.ReadAt, page.Messages[0].ReadBy["b"])

	out := e.Handle("b", domain.NewMarkReadRequest("missing", ""))
	assert.Equal(t, []string{"b"}, only(t, out, domain.EventError).Targets)
}

func TestSessionEngine_SearchAndPaginate(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "general")
	send(t, e, "a", "Go is fun")
	send(t, e, "a", "rust too")
	send(t, e, "a", "go go go")

	out := e.Handle("b", domain.NewSearchRequest("GO", ""))
	results := only(t, out, domain.EventSearchResults)
	assert.Equal(t, []string{"b"}, results.Targets)
	messages := results.Payload.([]domain.Message)
	require.Len(t, messages, 2)
	assert.Equal(t, "go go go", messages[0].Text)

	out = e.Handle("b", domain.NewSearchRequest("go", "nowhere"))
	assert.Len(t, find(out, domain.EventError), 1)

	out = e.Handle("b", domain.NewPageRequest("", 0, 2))
	page := only(t, out, domain.EventPaginatedMessages).Payload.(domain.PageResult)
	assert.Equal(t, 3, page.Total)
	assert.True(t, page.HasMore)
	assert.Len(t, page.Messages, 2)

	out = e.Handle("b", domain.NewPageRequest("nowhere", 0, 2))
	assert.Len(t, find(out, domain.EventError), 1)
}

func TestSessionEngine_ClearUnreadRequiresConnection(t *testing.T) {
	e := newTestEngine(t)
	assert.Empty(t, e.Handle("ghost", domain.NewClearUnreadRequest("")))
}

func TestSessionEngine_Disconnect(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")
	join(t, e, "b", "bob", "general")
	e.Handle("a", domain.NewTypingRequest(true, ""))

	out := e.Handle("a", domain.NewDisconnectRequest())
	left := only(t, out, domain.EventUserLeft)
	assert.Equal(t, []string{"b"}, left.Targets)
	assert.Equal(t, domain.PresencePayload{Username: "alice", ID: "a", RoomID: "general"}, left.Payload)
	assert.Equal(t, []string{"b"}, only(t, out, domain.EventUserList).Targets)
	assert.Equal(t, []string{}, only(t, out, domain.EventTypingUsers).Payload)
	assert.Len(t, e.Users(), 1)

	assert.Empty(t, e.Handle("a", domain.NewDisconnectRequest()))
	assert.Empty(t, e.Handle("a", domain.NewChatRequest("still here?", nil)))
}

func TestSessionEngine_LeavingClearsTypingInOtherRooms(t *testing.T) {
	tests := []struct {
		name  string
		leave domain.StreamRequest
	}{
		{name: "disconnect", leave: domain.NewDisconnectRequest()},
		{name: "change room", leave: domain.NewChangeRoomRequest("random")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, WithRooms("dev", "random"))
			join(t, e, "a", "alice", "general")
			join(t, e, "b", "bob", "dev")
			e.Handle("a", domain.NewTypingRequest(true, "dev"))

			out := e.Handle("a", tt.leave)
			typing := only(t, out, domain.EventTypingUsers)
			assert.Equal(t, []string{"b"}, typing.Targets)
			assert.Equal(t, []string{}, typing.Payload)

			e.mu.Lock()
			defer e.mu.Unlock()
			assert.Empty(t, e.store.Typing("dev"))
		})
	}
}

func TestSessionEngine_SnapshotsAreIndependent(t *testing.T) {
	e := newTestEngine(t)
	join(t, e, "a", "alice", "general")
	m := send(t, e, "a", "original")
	m.Reactions["🔥"] = []string{"x"}

	page, err := e.Page("general", 0, 50)
	require.NoError(t, err)
	assert.Empty(t, page.Messages[0].Reactions)
}

func TestSessionEngine_WithRooms(t *testing.T) {
	e := newTestEngine(t, WithRooms("random", "general", ""))
	assert.Equal(t, []string{"general", "random"}, e.Rooms())

	_, err := e.Page("random", 0, 50)
	assert.NoError(t, err)
	assert.Equal(t, EngineStats{Rooms: 2}, e.Stats())
}

func TestSessionEngine_ConcurrentActions(t *testing.T) {
	const (
		senders   = 8
		perSender = 20
		movers    = 4
		moves     = 21
		leavers   = 4
	)
	e := newTestEngine(t, WithRooms("dev", "lobby", "quiet"))
	ids := func(prefix string, n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("%s%d", prefix, i)
		}
		return out
	}
	senderIDs, moverIDs, leaverIDs := ids("s", senders), ids("m", movers), ids("l", leavers)
	for _, id := range senderIDs {
		join(t, e, id, "sender-"+id, "general")
	}
	for _, id := range moverIDs {
		join(t, e, id, "mover-"+id, "dev")
	}
	for _, id := range leaverIDs {
		join(t, e, id, "leaver-"+id, "lobby")
	}
	join(t, e, "o", "observer", "quiet")

	var wg sync.WaitGroup
	for _, id := range senderIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range perSender {
				e.Handle(id, domain.NewChatRequest(fmt.Sprintf("%s-%d", id, j), nil))
			}
		}()
	}
	for _, id := range moverIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range moves {
				room := "dev"
				if j%2 == 0 {
					room = "lobby"
				}
				e.Handle(id, domain.NewChangeRoomRequest(room))
			}
		}()
	}
	for _, id := range leaverIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Handle(id, domain.NewTypingRequest(true, ""))
			e.Handle(id, domain.NewChatRequest("bye", nil))
			e.Handle(id, domain.NewDisconnectRequest())
		}()
	}
	wg.Wait()

	assert.Equal(t, senders*perSender+leavers, e.Stats().Messages)
	page, err := e.Page("general", 0, domain.MaxRoomMessages)
	require.NoError(t, err)
	next := map[string]int{}
	for _, msg := range page.Messages {
		assert.Equal(t, fmt.Sprintf("%s-%d", msg.SenderID, next[msg.SenderID]), msg.Text)
		next[msg.SenderID]++
	}

	e.mu.Lock()
	for _, id := range append([]string{"o"}, moverIDs...) {
		assert.Equal(t, senders*perSender, e.unread.Snapshot(id)["general"], id)
	}
	for _, id := range senderIDs {
		assert.Equal(t, leavers, e.unread.Snapshot(id)["lobby"], id)
		assert.Zero(t, e.unread.Snapshot(id)["general"], id)
	}
	for _, id := range leaverIDs {
		assert.Empty(t, e.unread.Snapshot(id), id)
	}
	e.mu.Unlock()

	users := e.Users()
	assert.Len(t, users, senders+movers+1)
	for _, room := range e.Rooms() {
		want := []domain.UserInfo{}
		for _, user := range users {
			if user.CurrentRoom == room {
				want = append(want, user)
			}
		}
		assert.Equal(t, want, e.UsersInRoom(room), room)
	}
	for _, id := range moverIDs {
		assert.Contains(t, e.UsersInRoom("lobby"), domain.UserInfo{ID: id, Username: "mover-" + id, CurrentRoom: "lobby"})
	}
}
