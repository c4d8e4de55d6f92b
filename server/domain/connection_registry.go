package domain

import (
	"fmt"
	"slices"
)

// ConnectionRegistry is the source of truth for who is online and where.
// It is not safe for concurrent use; the session engine serializes access.
type ConnectionRegistry struct {
	conns map[string]*Connection
	order []string
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		conns: make(map[string]*Connection),
	}
}

// Register adds a connection or renames an existing one, keeping its room
// and its position in the registration order.
func (r *ConnectionRegistry) Register(id, name string) Connection {
	if conn, ok := r.conns[id]; ok {
		conn.Name = name
		return *conn
	}
	conn := &Connection{ID: id, Name: name}
	r.conns[id] = conn
	r.order = append(r.order, id)
	return *conn
}

func (r *ConnectionRegistry) SetRoom(id, room string) error {
	conn, ok := r.conns[id]
	if !ok {
		return fmt.Errorf("set room for %s: %w", id, ErrUnknownConnection)
	}
	conn.Room = room
	return nil
}

func (r *ConnectionRegistry) Unregister(id string) (Connection, error) {
	conn, ok := r.conns[id]
	if !ok {
		return Connection{}, fmt.Errorf("unregister %s: %w", id, ErrUnknownConnection)
	}
	delete(r.conns, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return *conn, nil
}

func (r *ConnectionRegistry) Get(id string) (Connection, error) {
	conn, ok := r.conns[id]
	if !ok {
		return Connection{}, fmt.Errorf("get %s: %w", id, ErrUnknownConnection)
	}
	return *conn, nil
}

// UsersInRoom lists the connections currently in room, in registration order.
func (r *ConnectionRegistry) UsersInRoom(room string) []UserInfo {
	users := []UserInfo{}
	for _, id := range r.order {
		if conn := r.conns[id]; conn.Room == room {
			users = append(users, conn.Info())
		}
	}
	return users
}

func (r *ConnectionRegistry) All() []UserInfo {
	users := make([]UserInfo, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.conns[id].Info())
	}
	return users
}

func (r *ConnectionRegistry) IDs() []string {
	return slices.Clone(r.order)
}

// IDsInRoom is UsersInRoom reduced to connection ids.
func (r *ConnectionRegistry) IDsInRoom(room string) []string {
	ids := []string{}
	for _, id := range r.order {
		if r.conns[id].Room == room {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *ConnectionRegistry) Len() int {
	return len(r.order)
}
