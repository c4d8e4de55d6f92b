package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ponyo877/chatroom/server/adaptor"
	"github.com/ponyo877/chatroom/server/domain"
)

const defaultTypingTimeout = 3 * time.Second

// StreamUsecase drives one streaming connection through the session engine
type StreamUsecase struct {
	repo          Repository
	engine        *SessionEngine
	hub           domain.MessageBroadcaster
	logger        *slog.Logger
	typingTimeout time.Duration
}

func NewStreamUsecase(repo Repository, engine *SessionEngine, hub domain.MessageBroadcaster, logger *slog.Logger, typingTimeout time.Duration) adaptor.StreamUsecase {
	if typingTimeout <= 0 {
		typingTimeout = defaultTypingTimeout
	}
	return &StreamUsecase{
		repo:          repo,
		engine:        engine,
		hub:           hub,
		logger:        logger,
		typingTimeout: typingTimeout,
	}
}

// HandleStreamSession processes requests until requestChan is closed or ctx
// is done, then disconnects the session. responseChan must stay open until
// this returns.
func (u *StreamUsecase) HandleStreamSession(
	ctx context.Context,
	session domain.StreamSession,
	requestChan <-chan domain.StreamRequest,
	responseChan chan<- domain.StreamResponse,
) error {
	if err := u.hub.RegisterSession(session, responseChan); err != nil {
		return fmt.Errorf("failed to register session: %w", err)
	}
	defer u.hub.UnregisterSession(session.ID)

	typing := newTypingTimer(u.typingTimeout, func(room string) {
		u.handle(session.ID, domain.NewTypingRequest(false, room))
	})
	defer u.end(session, typing)

	u.logger.Info("session started", "session", session.String())
	for {
		select {
		case <-ctx.Done():
			return nil
		case request, ok := <-requestChan:
			if !ok {
				return nil
			}
			u.dispatch(session, request, typing)
		}
	}
}

func (u *StreamUsecase) dispatch(session domain.StreamSession, request domain.StreamRequest, typing *typingTimer) {
	switch request.Type {
	case domain.RequestJoin:
		if request.Name == "" {
			request.Name = u.profileName(session.OwnerToken)
		}
	case domain.RequestTyping:
		if request.IsTyping {
			typing.Touch(request.RoomID)
		} else {
			typing.Stop()
		}
	case domain.RequestSendMessage, domain.RequestChangeRoom:
		typing.Stop()
	}
	u.handle(session.ID, request)
}

func (u *StreamUsecase) handle(sessionID string, request domain.StreamRequest) {
	outbounds := u.engine.HandleAndDeliver(sessionID, request, u.hub)
	u.persistRooms(outbounds)
}

func (u *StreamUsecase) end(session domain.StreamSession, typing *typingTimer) {
	typing.Stop()
	u.handle(session.ID, domain.NewDisconnectRequest())
	u.logger.Info("session ended", "session", session.String())
}

// SendError reports a transport-level rejection to one session.
func (u *StreamUsecase) SendError(sessionID string, err error) {
	if sendErr := u.hub.SendToSession(sessionID, domain.NewStreamError(err)); sendErr != nil {
		u.logger.Warn("Error sending error frame", "session", sessionID, "error", sendErr)
	}
}

func (u *StreamUsecase) GetStreamStats() domain.StreamStats {
	return u.hub.GetStats()
}

func (u *StreamUsecase) profileName(ownerToken string) string {
	if ownerToken == "" {
		return ""
	}
	config, err := u.repo.GetConfig(ownerToken)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			u.logger.Error("Error getting config from DB", "error", err)
		}
		return ""
	}
	return config.DisplayName
}

func (u *StreamUsecase) persistRooms(outbounds []domain.Outbound) {
	for _, out := range outbounds {
		if out.Event != domain.EventRoomCreated {
			continue
		}
		name, ok := out.Payload.(string)
		if !ok {
			continue
		}
		if err := u.repo.CreateRoom(name); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
			u.logger.Error("Error saving room to DB", "room", name, "error", err)
		}
	}
}

// typingTimer clears a session's typing flag after a quiet period.
type typingTimer struct {
	mu      sync.Mutex
	timeout time.Duration
	timer   *time.Timer
	expire  func(room string)
}

func newTypingTimer(timeout time.Duration, expire func(room string)) *typingTimer {
	return &typingTimer{timeout: timeout, expire: expire}
}

func (t *typingTimer) Touch(room string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.timeout, func() { t.expire(room) })
}

func (t *typingTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
