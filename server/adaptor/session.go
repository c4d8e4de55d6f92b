package adaptor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("rate limit exceeded, frame dropped")

// frameConn is the transport half of a streaming session.
type frameConn interface {
	ReadFrame() (chatpb.ClientFrame, error)
	WriteFrame(frame chatpb.ServerFrame) error
}

// closableConn is implemented by transports whose connection must not be
// touched after the handler returns. serveSession closes it and waits for the
// reader to stop.
type closableConn interface {
	Close() error
}

// serveSession pumps frames between conn and the stream usecase until the
// client goes away, the usecase stops or a write fails. limiter may be nil.
func serveSession(
	ctx context.Context,
	suc StreamUsecase,
	session domain.StreamSession,
	conn frameConn,
	limiter *rate.Limiter,
	logger *slog.Logger,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	requestChan := make(chan domain.StreamRequest, 32)
	responseChan := make(chan domain.StreamResponse, 64)

	usecaseDone := make(chan error, 1)
	go func() {
		defer close(responseChan)
		usecaseDone <- suc.HandleStreamSession(ctx, session, requestChan, responseChan)
	}()

	writerDone := make(chan error, 1)
	go func() {
		var writeErr error
		for response := range responseChan {
			if writeErr != nil {
				continue
			}
			frame, err := convertDomainResponseToFrame(response)
			if err != nil {
				logger.Error("failed to encode response", "session", session.ID, "event", response.Event.String(), "error", err)
				continue
			}
			if err := conn.WriteFrame(frame); err != nil {
				writeErr = fmt.Errorf("failed to send response: %w", err)
				cancel()
			}
		}
		writerDone <- writeErr
	}()

	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		defer close(requestChan)
		for {
			frame, err := conn.ReadFrame()
			if err != nil {
				logger.Info("client disconnected", "session", session.ID, "reason", err.Error())
				return
			}
			if limiter != nil && !limiter.Allow() {
				suc.SendError(session.ID, ErrRateLimited)
				continue
			}
			request, err := convertFrameToDomainRequest(frame)
			if err != nil {
				logger.Warn("failed to convert request", "session", session.ID, "error", err)
				suc.SendError(session.ID, err)
				continue
			}
			select {
			case requestChan <- request:
			case <-ctx.Done():
				return
			}
		}
	}()

	usecaseErr := <-usecaseDone
	cancel()
	writeErr := <-writerDone
	if c, ok := conn.(closableConn); ok {
		c.Close()
		<-readerDone
	}
	if usecaseErr != nil {
		logger.Error("stream usecase error", "session", session.ID, "error", usecaseErr)
		return usecaseErr
	}
	return writeErr
}
