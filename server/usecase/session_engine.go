package usecase

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ponyo877/chatroom/server/domain"
)

const defaultHistoryLimit = 50

// SessionEngine owns every piece of shared chat state. Each Handle call and
// each query runs to completion under one mutex, so handlers that read and
// write several stores never interleave.
type SessionEngine struct {
	mu           sync.Mutex
	registry     *domain.ConnectionRegistry
	directory    *domain.RoomDirectory
	store        *domain.RoomStore
	unread       *domain.UnreadTracker
	historyLimit int
	now          func() time.Time
}

type EngineOption func(*SessionEngine)

func WithHistoryLimit(limit int) EngineOption {
	return func(e *SessionEngine) {
		if limit > 0 {
			e.historyLimit = limit
		}
	}
}

func WithClock(now func() time.Time) EngineOption {
	return func(e *SessionEngine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRooms seeds the directory with previously persisted room names.
func WithRooms(names ...string) EngineOption {
	return func(e *SessionEngine) {
		for _, name := range e.directory.Seed(names...) {
			e.store.AddRoom(name)
		}
	}
}

func NewSessionEngine(opts ...EngineOption) *SessionEngine {
	e := &SessionEngine{
		registry:     domain.NewConnectionRegistry(),
		directory:    domain.NewRoomDirectory(),
		historyLimit: defaultHistoryLimit,
		now:          time.Now,
	}
	e.store = domain.NewRoomStore(func() time.Time { return e.now() })
	e.unread = domain.NewUnreadTracker()
	e.store.AddRoom(domain.DefaultRoom)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle applies one client action on behalf of connID and returns the
// notifications it produced. Rejected actions return nil.
func (e *SessionEngine) Handle(connID string, req domain.StreamRequest) []domain.Outbound {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.apply(connID, req)
}

// HandleAndDeliver is Handle followed by b.Deliver while the engine lock is
// still held, so every session receives notifications in the order the
// actions were applied. b must not block or call back into the engine.
func (e *SessionEngine) HandleAndDeliver(connID string, req domain.StreamRequest, b domain.MessageBroadcaster) []domain.Outbound {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := e.apply(connID, req)
	b.Deliver(out)
	return out
}

func (e *SessionEngine) apply(connID string, req domain.StreamRequest) []domain.Outbound {
	switch req.Type {
	case domain.RequestJoin:
		return e.join(connID, req.Name, req.RoomID)
	case domain.RequestCreateRoom:
		return e.createRoom(connID, req.RoomID)
	case domain.RequestClearUnread:
		return e.clearUnread(connID, req.RoomID)
	case domain.RequestDisconnect:
		return e.disconnect(connID)
	}

	conn, err := e.registry.Get(connID)
	if err != nil || !conn.IsJoined() {
		return nil
	}

	switch req.Type {
	case domain.RequestChangeRoom:
		return e.changeRoom(conn, req.RoomID)
	case domain.RequestSendMessage:
		return e.sendMessage(conn, req.Text, req.Attachment)
	case domain.RequestPrivateMessage:
		return e.sendPrivate(conn, req.To, req.Text, req.Attachment)
	case domain.RequestTyping:
		return e.setTyping(conn, req.IsTyping, e.roomOrCurrent(conn, req.RoomID))
	case domain.RequestAddReaction, domain.RequestRemoveReaction:
		return e.react(conn, req.Type == domain.RequestAddReaction, req.MessageID, req.Reaction, e.roomOrCurrent(conn, req.RoomID))
	case domain.RequestMarkRead:
		return e.markRead(conn, req.MessageID, e.roomOrCurrent(conn, req.RoomID))
	case domain.RequestSearch:
		return e.search(conn, req.Query, e.roomOrCurrent(conn, req.RoomID))
	case domain.RequestPaginate:
		return e.paginate(conn, e.roomOrCurrent(conn, req.RoomID), req.Page, req.Limit)
	default:
		return nil
	}
}

func (e *SessionEngine) roomOrCurrent(conn domain.Connection, room string) string {
	if room != "" {
		return room
	}
	return conn.Room
}

func (e *SessionEngine) members(room string) []string {
	return e.registry.IDsInRoom(room)
}

func (e *SessionEngine) everyone(extra ...string) []string {
	ids := e.registry.IDs()
	for _, id := range extra {
		if id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func rejection(connID string, err error) []domain.Outbound {
	return []domain.Outbound{domain.NewOutbound(domain.EventError, domain.ErrorPayload{Message: err.Error()}, connID)}
}

// ensureRoom makes room addressable, creating it on first reference when the
// name is valid.
func (e *SessionEngine) ensureRoom(room string) (created bool, err error) {
	if e.directory.Exists(room) {
		return false, nil
	}
	if err := e.directory.Create(room); err != nil {
		return false, err
	}
	e.store.AddRoom(room)
	return true, nil
}

func (e *SessionEngine) roomCreated(connID, room string) []domain.Outbound {
	return []domain.Outbound{
		domain.NewOutbound(domain.EventRoomList, e.directory.All(), e.everyone(connID)...),
		domain.NewOutbound(domain.EventRoomCreated, room, connID),
	}
}

// clearTyping drops connID from every typing set, including rooms it typed
// into without being a member, and reports each changed set to its room.
func (e *SessionEngine) clearTyping(connID string) []domain.Outbound {
	var out []domain.Outbound
	for _, room := range e.store.ClearTypingEverywhere(connID) {
		out = append(out, domain.NewOutbound(domain.EventTypingUsers, e.store.Typing(room), e.members(room)...))
	}
	return out
}

// leave clears conn's typing flags and reports its old room's new user list.
// The registry must already reflect the departure.
func (e *SessionEngine) leave(conn domain.Connection) []domain.Outbound {
	out := e.clearTyping(conn.ID)
	return append(out, domain.NewOutbound(domain.EventUserList, e.registry.UsersInRoom(conn.Room), e.members(conn.Room)...))
}

func (e *SessionEngine) enter(conn domain.Connection, room string) []domain.Outbound {
	members := e.members(room)
	return []domain.Outbound{
		domain.NewOutbound(domain.EventUserList, e.registry.UsersInRoom(room), members...),
		domain.NewOutbound(domain.EventUserJoined, domain.PresencePayload{Username: conn.Name, ID: conn.ID, RoomID: room}, members...),
		domain.NewOutbound(domain.EventMessageHistory, e.store.Recent(room, e.historyLimit), conn.ID),
	}
}

func (e *SessionEngine) join(connID, name, room string) []domain.Outbound {
	name = strings.TrimSpace(name)
	if err := domain.ValidateDisplayName(name); err != nil {
		return rejection(connID, err)
	}
	if room == "" {
		room = domain.DefaultRoom
	}

	var out []domain.Outbound
	created, err := e.ensureRoom(room)
	if err != nil {
		room = domain.DefaultRoom
	}

	previous, err := e.registry.Get(connID)
	wasJoined := err == nil && previous.IsJoined()
	conn := e.registry.Register(connID, name)
	if err := e.registry.SetRoom(connID, room); err != nil {
		return nil
	}
	conn.Room = room
	if wasJoined && previous.Room != room {
		out = append(out, e.leave(previous)...)
	}

	if created {
		out = append(out, e.roomCreated(connID, room)...)
	} else {
		out = append(out, domain.NewOutbound(domain.EventRoomList, e.directory.All(), connID))
	}
	return append(out, e.enter(conn, room)...)
}

func (e *SessionEngine) changeRoom(conn domain.Connection, room string) []domain.Outbound {
	if room == conn.Room {
		return []domain.Outbound{domain.NewOutbound(domain.EventMessageHistory, e.store.Recent(room, e.historyLimit), conn.ID)}
	}

	created, err := e.ensureRoom(room)
	if err != nil {
		return rejection(conn.ID, fmt.Errorf("cannot join %q: %w", room, err))
	}
	if err := e.registry.SetRoom(conn.ID, room); err != nil {
		return nil
	}

	out := e.leave(conn)
	if created {
		out = append(out, e.roomCreated(conn.ID, room)...)
	}
	moved := conn
	moved.Room = room
	return append(out, e.enter(moved, room)...)
}

func (e *SessionEngine) createRoom(connID, name string) []domain.Outbound {
	if err := e.directory.Create(name); err != nil {
		return []domain.Outbound{domain.NewOutbound(domain.EventRoomError, domain.ErrorPayload{Message: domain.ErrInvalidOrDuplicate.Error()}, connID)}
	}
	e.store.AddRoom(name)
	return e.roomCreated(connID, name)
}

func (e *SessionEngine) sendMessage(conn domain.Connection, text string, attachment *domain.Attachment) []domain.Outbound {
	msg := domain.NewMessage(conn.Name, conn.ID, conn.Room, text, attachment)
	if msg.IsEmpty() {
		return rejection(conn.ID, errors.New("message is empty"))
	}
	if err := attachment.Validate(); err != nil {
		return rejection(conn.ID, err)
	}
	stored, err := e.store.Append(conn.Room, msg)
	if err != nil {
		return nil
	}

	var out []domain.Outbound
	if e.store.ClearTyping(conn.Room, conn.ID) {
		out = append(out, domain.NewOutbound(domain.EventTypingUsers, e.store.Typing(conn.Room), e.members(conn.Room)...))
	}
	out = append(out, domain.NewOutbound(domain.EventReceiveMessage, stored, e.members(conn.Room)...))

	for _, user := range e.registry.All() {
		if user.ID == conn.ID || user.CurrentRoom == conn.Room {
			continue
		}
		e.unread.Increment(user.ID, conn.Room)
		out = append(out, domain.NewOutbound(domain.EventUnreadUpdate, e.unread.Snapshot(user.ID), user.ID))
	}
	return out
}

func (e *SessionEngine) sendPrivate(conn domain.Connection, to, text string, attachment *domain.Attachment) []domain.Outbound {
	recipient, err := e.registry.Get(to)
	if err != nil {
		return nil
	}
	msg := domain.NewPrivateMessage(conn.Name, conn.ID, recipient.ID, text, attachment, e.now())
	if msg.IsEmpty() {
		return rejection(conn.ID, errors.New("message is empty"))
	}
	if err := attachment.Validate(); err != nil {
		return rejection(conn.ID, err)
	}

	targets := []string{conn.ID}
	if recipient.ID != conn.ID {
		targets = append(targets, recipient.ID)
	}
	e.unread.Increment(recipient.ID, domain.PrivateBucket)
	return []domain.Outbound{
		domain.NewOutbound(domain.EventPrivateMessage, msg, targets...),
		domain.NewOutbound(domain.EventUnreadUpdate, e.unread.Snapshot(recipient.ID), recipient.ID),
	}
}

func (e *SessionEngine) setTyping(conn domain.Connection, typing bool, room string) []domain.Outbound {
	if _, err := e.store.SetTyping(room, conn.ID, conn.Name, typing); err != nil {
		return nil
	}
	return []domain.Outbound{domain.NewOutbound(domain.EventTypingUsers, e.store.Typing(room), e.members(room)...)}
}

func (e *SessionEngine) react(conn domain.Connection, add bool, messageID, symbol, room string) []domain.Outbound {
	var (
		outcome domain.ReactionOutcome
		err     error
		event   = domain.EventReactionRemoved
	)
	if add {
		outcome, err = e.store.AddReaction(room, messageID, symbol, conn.ID)
		event = domain.EventReactionAdded
	} else {
		outcome, err = e.store.RemoveReaction(room, messageID, symbol, conn.ID)
	}
	if err != nil {
		return rejection(conn.ID, err)
	}
	if !outcome.Changed() {
		return nil
	}
	payload := domain.ReactionPayload{MessageID: messageID, Reaction: symbol, UserID: conn.ID}
	return []domain.Outbound{domain.NewOutbound(event, payload, e.members(room)...)}
}

func (e *SessionEngine) markRead(conn domain.Connection, messageID, room string) []domain.Outbound {
	at := e.now()
	if err := e.store.MarkRead(room, messageID, conn.ID, at); err != nil {
		return rejection(conn.ID, err)
	}
	payload := domain.ReadPayload{MessageID: messageID, UserID: conn.ID, ReadAt: at}
	return []domain.Outbound{domain.NewOutbound(domain.EventMessageRead, payload, e.members(room)...)}
}

func (e *SessionEngine) search(conn domain.Connection, query, room string) []domain.Outbound {
	results, err := e.store.Search(room, query, domain.DefaultMaxResults)
	if err != nil {
		return rejection(conn.ID, err)
	}
	return []domain.Outbound{domain.NewOutbound(domain.EventSearchResults, results, conn.ID)}
}

func (e *SessionEngine) paginate(conn domain.Connection, room string, page, size int) []domain.Outbound {
	result, err := e.store.Page(room, page, size)
	if err != nil {
		return rejection(conn.ID, err)
	}
	return []domain.Outbound{domain.NewOutbound(domain.EventPaginatedMessages, result, conn.ID)}
}

func (e *SessionEngine) clearUnread(connID, bucket string) []domain.Outbound {
	if _, err := e.registry.Get(connID); err != nil {
		return nil
	}
	e.unread.Clear(connID, bucket)
	return []domain.Outbound{domain.NewOutbound(domain.EventUnreadUpdate, e.unread.Snapshot(connID), connID)}
}

func (e *SessionEngine) disconnect(connID string) []domain.Outbound {
	conn, err := e.registry.Unregister(connID)
	if err != nil {
		return nil
	}
	e.unread.Drop(connID)
	if !conn.IsJoined() {
		return nil
	}

	members := e.members(conn.Room)
	out := e.clearTyping(conn.ID)
	return append(out,
		domain.NewOutbound(domain.EventUserLeft, domain.PresencePayload{Username: conn.Name, ID: conn.ID, RoomID: conn.Room}, members...),
		domain.NewOutbound(domain.EventUserList, e.registry.UsersInRoom(conn.Room), members...),
	)
}

// EngineStats is a point-in-time summary of engine state.
type EngineStats struct {
	Rooms       int
	Connections int
	Messages    int
}

func (e *SessionEngine) Stats() EngineStats {
	e.mu.Lock()
	defer e.mu.Unlock()

	return EngineStats{
		Rooms:       e.directory.Len(),
		Connections: e.registry.Len(),
		Messages:    e.store.TotalMessages(),
	}
}

func (e *SessionEngine) Rooms() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.directory.All()
}

func (e *SessionEngine) UsersInRoom(room string) []domain.UserInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.UsersInRoom(room)
}

func (e *SessionEngine) Users() []domain.UserInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.All()
}

func (e *SessionEngine) Page(room string, page, size int) (domain.PageResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Page(room, page, size)
}

func (e *SessionEngine) Search(room, query string) ([]domain.Message, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.store.Search(room, query, domain.DefaultMaxResults)
}

// CreateRoomDirect creates a room outside any connection and delivers the
// room list to every connected session through b, under the engine lock.
func (e *SessionEngine) CreateRoomDirect(name string, b domain.MessageBroadcaster) ([]domain.Outbound, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.directory.Create(name); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidOrDuplicate, err)
	}
	e.store.AddRoom(name)
	out := []domain.Outbound{domain.NewOutbound(domain.EventRoomList, e.directory.All(), e.everyone()...)}
	b.Deliver(out)
	return out, nil
}
