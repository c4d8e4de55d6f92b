package adaptor

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

type pipeConn struct {
	in     chan chatpb.ClientFrame
	out    chan chatpb.ServerFrame
	closed chan struct{}
	once   sync.Once
}

func newPipeConn() *pipeConn {
	return &pipeConn{
		in:     make(chan chatpb.ClientFrame, 8),
		out:    make(chan chatpb.ServerFrame, 8),
		closed: make(chan struct{}),
	}
}

func (c *pipeConn) ReadFrame() (chatpb.ClientFrame, error) {
	select {
	case f, ok := <-c.in:
		if !ok {
			return chatpb.ClientFrame{}, io.EOF
		}
		return f, nil
	case <-c.closed:
		return chatpb.ClientFrame{}, io.EOF
	}
}

func (c *pipeConn) WriteFrame(frame chatpb.ServerFrame) error {
	c.out <- frame
	return nil
}

func (c *pipeConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return nil
}

func (c *pipeConn) next(t *testing.T) chatpb.ServerFrame {
	t.Helper()
	select {
	case f := <-c.out:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return chatpb.ServerFrame{}
	}
}

func serveAsync(suc StreamUsecase, conn frameConn, limiter *rate.Limiter) chan error {
	done := make(chan error, 1)
	session := domain.NewStreamSession("s1", "remote", "test", "")
	go func() {
		done <- serveSession(context.Background(), suc, session, conn, limiter, discardLogger())
	}()
	return done
}

func TestServeSession_RoundTrip(t *testing.T) {
	suc := newEchoStreamUsecase()
	conn := newPipeConn()
	done := serveAsync(suc, conn, nil)

	conn.in <- chatpb.ClientFrame{Type: "typing", Payload: json.RawMessage(`{"isTyping":true}`)}
	got := conn.next(t)
	assert.Equal(t, "room_created", got.Event)
	assert.JSONEq(t, `"typing"`, string(got.Payload))

	conn.in <- chatpb.ClientFrame{Type: "bogus"}
	got = conn.next(t)
	assert.Equal(t, "error", got.Event)

	close(conn.in)
	require.NoError(t, <-done)
	<-suc.ended
}

func TestServeSession_RateLimited(t *testing.T) {
	suc := newEchoStreamUsecase()
	conn := newPipeConn()
	done := serveAsync(suc, conn, rate.NewLimiter(0, 1))

	conn.in <- chatpb.ClientFrame{Type: "typing"}
	assert.Equal(t, "room_created", conn.next(t).Event)

	conn.in <- chatpb.ClientFrame{Type: "typing"}
	got := conn.next(t)
	assert.Equal(t, "error", got.Event)
	var payload domain.ErrorPayload
	require.NoError(t, got.DecodePayload(&payload))
	assert.Equal(t, ErrRateLimited.Error(), payload.Message)

	conn.Close()
	require.NoError(t, <-done)
}

type failingWriter struct {
	*pipeConn
}

func (c failingWriter) WriteFrame(chatpb.ServerFrame) error {
	return io.ErrClosedPipe
}

func TestServeSession_WriteFailureEndsSession(t *testing.T) {
	suc := newEchoStreamUsecase()
	conn := failingWriter{newPipeConn()}
	done := serveAsync(suc, conn, nil)

	conn.in <- chatpb.ClientFrame{Type: "typing"}
	err := <-done
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
