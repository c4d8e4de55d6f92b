package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/ponyo877/chatroom/server/adaptor"
	"github.com/ponyo877/chatroom/server/domain"
)

type Usecase struct {
	repo   Repository
	engine *SessionEngine
	hub    domain.MessageBroadcaster
	logger *slog.Logger
}

func NewUsecase(repo Repository, engine *SessionEngine, hub domain.MessageBroadcaster, logger *slog.Logger) adaptor.Usecase {
	return &Usecase{
		repo:   repo,
		engine: engine,
		hub:    hub,
		logger: logger,
	}
}

// LoadRooms restores the persisted room catalog into the engine.
func LoadRooms(repo Repository) ([]string, error) {
	records, err := repo.ListRooms()
	if err != nil {
		return nil, fmt.Errorf("error loading rooms: %w", err)
	}
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name)
	}
	return names, nil
}

func (u Usecase) Status() domain.ServerStatus {
	stats := u.engine.Stats()
	return domain.ServerStatus{
		Rooms:          stats.Rooms,
		ConnectedUsers: stats.Connections,
		Messages:       stats.Messages,
		Stream:         u.hub.GetStats(),
	}
}

// ListRooms returns every room in the directory, or those whose name matches
// the regular expression pattern when it is set.
func (u Usecase) ListRooms(pattern string) ([]string, error) {
	rooms := u.engine.Rooms()
	if pattern == "" {
		return rooms, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("error listing rooms: %w", err)
	}
	return slices.DeleteFunc(rooms, func(name string) bool {
		return !re.MatchString(name)
	}), nil
}

// ListUsers lists the users of room, or every connected user when room is
// empty.
func (u Usecase) ListUsers(room string) []domain.UserInfo {
	if room == "" {
		return u.engine.Users()
	}
	return u.engine.UsersInRoom(room)
}

func (u Usecase) ListMessages(room string, page, limit int) (domain.PageResult, error) {
	result, err := u.engine.Page(room, page, limit)
	if err != nil {
		return domain.PageResult{}, fmt.Errorf("error listing messages: %w", err)
	}
	return result, nil
}

func (u Usecase) SearchMessages(room, query string) ([]domain.Message, error) {
	messages, err := u.engine.Search(room, query)
	if err != nil {
		return nil, fmt.Errorf("error searching messages: %w", err)
	}
	return messages, nil
}

func (u Usecase) CreateRoom(name string) error {
	if _, err := u.engine.CreateRoomDirect(name, u.hub); err != nil {
		return fmt.Errorf("error creating room: %w", err)
	}
	if err := u.repo.CreateRoom(name); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		u.logger.Error("Error saving room to DB", "room", name, "error", err)
	}
	return nil
}

func (u Usecase) GetConfig(ownerToken string) (domain.Config, error) {
	config, err := u.repo.GetConfig(ownerToken)
	if err != nil {
		return domain.Config{}, fmt.Errorf("error getting config: %w", err)
	}
	return config, nil
}

func (u Usecase) SetConfig(config domain.Config) error {
	if !config.IsValid() {
		return fmt.Errorf("error setting config: %w", domain.ErrInvalidName)
	}
	if err := u.repo.CreateConfig(config); err != nil {
		return fmt.Errorf("error setting config: %w", err)
	}
	return nil
}
