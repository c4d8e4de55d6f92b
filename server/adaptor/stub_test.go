package adaptor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/ponyo877/chatroom/server/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubUsecase struct {
	rooms    []string
	users    []domain.UserInfo
	page     domain.PageResult
	pageErr  error
	messages []domain.Message
	created  []string
	configs  map[string]domain.Config
}

func (s *stubUsecase) Status() domain.ServerStatus {
	return domain.ServerStatus{Rooms: len(s.rooms), ConnectedUsers: len(s.users)}
}

func (s *stubUsecase) ListRooms(pattern string) ([]string, error) {
	return s.rooms, nil
}

func (s *stubUsecase) ListUsers(room string) []domain.UserInfo {
	if room == "" {
		return s.users
	}
	users := []domain.UserInfo{}
	for _, user := range s.users {
		if user.CurrentRoom == room {
			users = append(users, user)
		}
	}
	return users
}

func (s *stubUsecase) ListMessages(room string, page, limit int) (domain.PageResult, error) {
	if s.pageErr != nil {
		return domain.PageResult{}, s.pageErr
	}
	result := s.page
	result.Page = page
	return result, nil
}

func (s *stubUsecase) SearchMessages(room, query string) ([]domain.Message, error) {
	return s.messages, nil
}

func (s *stubUsecase) CreateRoom(name string) error {
	if err := domain.ValidateRoomName(name); err != nil {
		return fmt.Errorf("error creating room: %w: %w", domain.ErrInvalidOrDuplicate, err)
	}
	if name == "general" || slices.Contains(s.created, name) {
		return fmt.Errorf("error creating room: %w: room %q: %w", domain.ErrInvalidOrDuplicate, name, domain.ErrAlreadyExists)
	}
	s.created = append(s.created, name)
	return nil
}

func (s *stubUsecase) GetConfig(ownerToken string) (domain.Config, error) {
	config, ok := s.configs[ownerToken]
	if !ok {
		return domain.Config{}, domain.ErrNotFound
	}
	return config, nil
}

func (s *stubUsecase) SetConfig(config domain.Config) error {
	if s.configs == nil {
		s.configs = map[string]domain.Config{}
	}
	s.configs[config.OwnerToken] = config
	return nil
}

// echoStreamUsecase answers every request with one response naming the
// request type, and reports errors through the same channel.
type echoStreamUsecase struct {
	mu       sync.Mutex
	response chan<- domain.StreamResponse
	ready    chan struct{}
	ended    chan struct{}
}

func newEchoStreamUsecase() *echoStreamUsecase {
	return &echoStreamUsecase{
		ready: make(chan struct{}),
		ended: make(chan struct{}),
	}
}

func (s *echoStreamUsecase) HandleStreamSession(ctx context.Context, session domain.StreamSession, requestChan <-chan domain.StreamRequest, responseChan chan<- domain.StreamResponse) error {
	s.mu.Lock()
	s.response = responseChan
	s.mu.Unlock()
	close(s.ready)
	defer close(s.ended)

	for {
		select {
		case <-ctx.Done():
			return nil
		case request, ok := <-requestChan:
			if !ok {
				return nil
			}
			responseChan <- domain.NewStreamResponse(domain.EventRoomCreated, request.Type.String())
		}
	}
}

func (s *echoStreamUsecase) SendError(sessionID string, err error) {
	<-s.ready
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case s.response <- domain.NewStreamError(err):
	default:
	}
}

func (s *echoStreamUsecase) GetStreamStats() domain.StreamStats {
	return domain.StreamStats{}
}
