package adaptor

import (
	"context"
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ponyo877/chatroom/chatpb"
	"github.com/ponyo877/chatroom/server/domain"
	"golang.org/x/time/rate"
)

func upgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("owner_token", c.Query("owner_token"))
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

type wsFrameConn struct {
	conn *websocket.Conn
}

func (c wsFrameConn) ReadFrame() (chatpb.ClientFrame, error) {
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return chatpb.ClientFrame{}, err
	}
	// malformed frames surface as unknown requests
	var frame chatpb.ClientFrame
	if err := json.Unmarshal(msg, &frame); err != nil {
		return chatpb.ClientFrame{}, nil
	}
	return frame, nil
}

func (c wsFrameConn) WriteFrame(frame chatpb.ServerFrame) error {
	return c.conn.WriteJSON(frame)
}

func (c wsFrameConn) Close() error {
	return c.conn.Close()
}

func (h *HTTPHandler) websocketHandler() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		ownerToken, _ := c.Locals("owner_token").(string)
		session := domain.NewStreamSession(uuid.NewString(), c.RemoteAddr().String(), "websocket", ownerToken)

		var limiter *rate.Limiter
		if h.config.Limiter != nil {
			limiter = h.config.Limiter()
		}
		if err := serveSession(context.Background(), h.suc, session, wsFrameConn{conn: c}, limiter, h.logger); err != nil {
			h.logger.Error("websocket session failed", "session", session.ID, "error", err)
		}
	})
}
