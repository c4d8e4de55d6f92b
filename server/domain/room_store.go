package domain

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

const (
	MaxRoomMessages   = 500
	DefaultPageSize   = 50
	DefaultMaxResults = 20
)

type room struct {
	name     string
	messages []*Message
	typing   map[string]string
	typers   []string
}

func newRoom(name string) *room {
	return &room{
		name:   name,
		typing: make(map[string]string),
	}
}

func (r *room) find(id string) *Message {
	for _, msg := range slices.Backward(r.messages) {
		if msg.ID == id {
			return msg
		}
	}
	return nil
}

// PageResult is one window of a room log, oldest-first.
type PageResult struct {
	Messages []Message `json:"messages"`
	Page     int       `json:"page"`
	Total    int       `json:"total"`
	HasMore  bool      `json:"hasMore"`
}

// RoomStore owns the bounded message log and typing set of every room.
// It is not safe for concurrent use.
type RoomStore struct {
	rooms map[string]*room
	now   func() time.Time
}

func NewRoomStore(now func() time.Time) *RoomStore {
	if now == nil {
		now = time.Now
	}
	return &RoomStore{
		rooms: make(map[string]*room),
		now:   now,
	}
}

// AddRoom makes a room addressable. Adding a known room is a no-op.
func (s *RoomStore) AddRoom(name string) {
	if _, ok := s.rooms[name]; !ok {
		s.rooms[name] = newRoom(name)
	}
}

func (s *RoomStore) HasRoom(name string) bool {
	_, ok := s.rooms[name]
	return ok
}

func (s *RoomStore) room(name string) (*room, error) {
	r, ok := s.rooms[name]
	if !ok {
		return nil, fmt.Errorf("room %q: %w", name, ErrNotFound)
	}
	return r, nil
}

// Append stores msg in room, assigning an id and timestamp when absent, and
// evicts the oldest entry once the log exceeds MaxRoomMessages.
func (s *RoomStore) Append(roomName string, msg Message) (Message, error) {
	r, err := s.room(roomName)
	if err != nil {
		return Message{}, err
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now()
	}
	if msg.ID == "" {
		msg.ID = NewMessageID(msg.Timestamp)
	}
	msg.RoomID = roomName
	msg.Private = false
	msg.RecipientID = ""
	msg.Reactions = map[string][]string{}
	msg.ReadBy = map[string]time.Time{}
	stored := msg.Clone()
	r.messages = append(r.messages, &stored)
	if over := len(r.messages) - MaxRoomMessages; over > 0 {
		r.messages = slices.Delete(r.messages, 0, over)
	}
	return stored.Clone(), nil
}

func clones(seq iter.Seq[*Message]) iter.Seq[Message] {
	return func(yield func(Message) bool) {
		for msg := range seq {
			if !yield(msg.Clone()) {
				return
			}
		}
	}
}

// Recent returns the last limit messages, oldest-first.
func (s *RoomStore) Recent(roomName string, limit int) []Message {
	r, ok := s.rooms[roomName]
	if !ok || limit <= 0 {
		return []Message{}
	}
	start := max(len(r.messages)-limit, 0)
	return collect(clones(slices.Values(r.messages[start:])))
}

func collect(seq iter.Seq[Message]) []Message {
	messages := slices.Collect(seq)
	if messages == nil {
		messages = []Message{}
	}
	return messages
}

// Page returns the window [len-(page+1)*size, len-page*size) clamped to the
// log. Page 0 holds the most recent size messages.
func (s *RoomStore) Page(roomName string, page, size int) (PageResult, error) {
	r, err := s.room(roomName)
	if err != nil {
		return PageResult{}, err
	}
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(r.messages)
	start := max(total-(page+1)*size, 0)
	end := min(max(total-page*size, 0), total)
	if start > end {
		start = end
	}
	return PageResult{
		Messages: collect(clones(slices.Values(r.messages[start:end]))),
		Page:     page,
		Total:    total,
		HasMore:  start > 0,
	}, nil
}

func (s *RoomStore) FindByID(roomName, id string) (Message, error) {
	r, err := s.room(roomName)
	if err != nil {
		return Message{}, err
	}
	msg := r.find(id)
	if msg == nil {
		return Message{}, fmt.Errorf("message %s in %q: %w", id, roomName, ErrNotFound)
	}
	return msg.Clone(), nil
}

func (s *RoomStore) AddReaction(roomName, id, symbol, connID string) (ReactionOutcome, error) {
	msg, err := s.message(roomName, id)
	if err != nil {
		return ReactionNotPresent, err
	}
	if msg.Reactions == nil {
		msg.Reactions = map[string][]string{}
	}
	ids := msg.Reactions[symbol]
	if slices.Contains(ids, connID) {
		return ReactionAlreadyPresent, nil
	}
	msg.Reactions[symbol] = append(ids, connID)
	return ReactionAdded, nil
}

func (s *RoomStore) RemoveReaction(roomName, id, symbol, connID string) (ReactionOutcome, error) {
	msg, err := s.message(roomName, id)
	if err != nil {
		return ReactionNotPresent, err
	}
	ids, ok := msg.Reactions[symbol]
	if !ok {
		return ReactionNotPresent, nil
	}
	i := slices.Index(ids, connID)
	if i < 0 {
		return ReactionNotPresent, nil
	}
	msg.Reactions[symbol] = slices.Delete(ids, i, i+1)
	return ReactionRemoved, nil
}

// MarkRead records at as connID's read time, replacing any earlier call.
func (s *RoomStore) MarkRead(roomName, id, connID string, at time.Time) error {
	msg, err := s.message(roomName, id)
	if err != nil {
		return err
	}
	if msg.ReadBy == nil {
		msg.ReadBy = map[string]time.Time{}
	}
	msg.ReadBy[connID] = at
	return nil
}

func (s *RoomStore) message(roomName, id string) (*Message, error) {
	r, err := s.room(roomName)
	if err != nil {
		return nil, err
	}
	msg := r.find(id)
	if msg == nil {
		return nil, fmt.Errorf("message %s in %q: %w", id, roomName, ErrNotFound)
	}
	return msg, nil
}

// Search matches query as a case-insensitive substring of message text,
// newest first. Messages without text never match.
func (s *RoomStore) Search(roomName, query string, maxResults int) ([]Message, error) {
	r, err := s.room(roomName)
	if err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	results := []Message{}
	if query == "" {
		return results, nil
	}
	fold := cases.Fold()
	needle := fold.String(query)
	for _, msg := range slices.Backward(r.messages) {
		if msg.Text == "" || !strings.Contains(fold.String(msg.Text), needle) {
			continue
		}
		results = append(results, msg.Clone())
		if len(results) == maxResults {
			break
		}
	}
	return results, nil
}

// SetTyping adds or removes connID from the room's typing set and reports
// whether the set changed.
func (s *RoomStore) SetTyping(roomName, connID, name string, typing bool) (bool, error) {
	r, err := s.room(roomName)
	if err != nil {
		return false, err
	}
	_, present := r.typing[connID]
	switch {
	case typing && !present:
		r.typing[connID] = name
		r.typers = append(r.typers, connID)
		return true, nil
	case typing && present:
		changed := r.typing[connID] != name
		r.typing[connID] = name
		return changed, nil
	case !typing && present:
		delete(r.typing, connID)
		r.typers = slices.DeleteFunc(r.typers, func(id string) bool { return id == connID })
		return true, nil
	default:
		return false, nil
	}
}

// Typing lists the display names currently typing, in start order.
func (s *RoomStore) Typing(roomName string) []string {
	names := []string{}
	r, ok := s.rooms[roomName]
	if !ok {
		return names
	}
	for _, id := range r.typers {
		names = append(names, r.typing[id])
	}
	return names
}

func (s *RoomStore) Len(roomName string) int {
	if r, ok := s.rooms[roomName]; ok {
		return len(r.messages)
	}
	return 0
}

func (s *RoomStore) TotalMessages() int {
	total := 0
	for _, r := range s.rooms {
		total += len(r.messages)
	}
	return total
}

// ClearTyping removes connID from the room's typing set and reports whether
// it was there.
func (s *RoomStore) ClearTyping(roomName, connID string) bool {
	changed, _ := s.SetTyping(roomName, connID, "", false)
	return changed
}

// ClearTypingEverywhere removes connID from the typing set of every room and
// returns the rooms whose set changed, sorted by name.
func (s *RoomStore) ClearTypingEverywhere(connID string) []string {
	var changed []string
	for name := range s.rooms {
		if s.ClearTyping(name, connID) {
			changed = append(changed, name)
		}
	}
	slices.Sort(changed)
	return changed
}
