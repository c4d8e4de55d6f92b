package domain

import "time"

// RoomRecord is the persisted catalog entry of a room.
type RoomRecord struct {
	ID        int
	Name      string
	CreatedAt time.Time
}

func NewRoomRecord(id int, name string, createdAt time.Time) RoomRecord {
	return RoomRecord{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt,
	}
}
