package adaptor

import (
	"context"

	"github.com/ponyo877/chatroom/server/domain"
)

type Usecase interface {
	Status() domain.ServerStatus
	ListRooms(pattern string) ([]string, error)
	ListUsers(room string) []domain.UserInfo
	ListMessages(room string, page, limit int) (domain.PageResult, error)
	SearchMessages(room, query string) ([]domain.Message, error)
	CreateRoom(name string) error
	GetConfig(ownerToken string) (domain.Config, error)
	SetConfig(config domain.Config) error
}

type StreamUsecase interface {
	HandleStreamSession(ctx context.Context, session domain.StreamSession, requestChan <-chan domain.StreamRequest, responseChan chan<- domain.StreamResponse) error
	SendError(sessionID string, err error)
	GetStreamStats() domain.StreamStats
}
