package domain

import (
	"fmt"
	"slices"
)

// RoomDirectory holds every room name in creation order. DefaultRoom is
// seeded on construction and there is no way to remove a room.
type RoomDirectory struct {
	names []string
	index map[string]struct{}
}

func NewRoomDirectory() *RoomDirectory {
	d := &RoomDirectory{index: make(map[string]struct{})}
	d.names = append(d.names, DefaultRoom)
	d.index[DefaultRoom] = struct{}{}
	return d
}

func (d *RoomDirectory) Create(name string) error {
	if err := ValidateRoomName(name); err != nil {
		return err
	}
	if d.Exists(name) {
		return fmt.Errorf("room %q: %w", name, ErrAlreadyExists)
	}
	d.names = append(d.names, name)
	d.index[name] = struct{}{}
	return nil
}

// Seed restores previously persisted names, skipping invalid or known ones.
func (d *RoomDirectory) Seed(names ...string) []string {
	var added []string
	for _, name := range names {
		if err := d.Create(name); err == nil {
			added = append(added, name)
		}
	}
	return added
}

func (d *RoomDirectory) Exists(name string) bool {
	_, ok := d.index[name]
	return ok
}

func (d *RoomDirectory) All() []string {
	return slices.Clone(d.names)
}

func (d *RoomDirectory) Len() int {
	return len(d.names)
}
