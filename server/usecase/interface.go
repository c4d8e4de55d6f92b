package usecase

import "github.com/ponyo877/chatroom/server/domain"

type Repository interface {
	// Room
	ListRooms() ([]domain.RoomRecord, error)
	CreateRoom(name string) error

	// Config
	GetConfig(ownerToken string) (domain.Config, error)
	CreateConfig(config domain.Config) error
}
