package adaptor

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/ponyo877/chatroom/server/domain"
	"golang.org/x/time/rate"
)

const version = "1.0.0"

type HTTPConfig struct {
	ClientURL string
	Limiter   func() *rate.Limiter
}

type HTTPHandler struct {
	uc     Usecase
	suc    StreamUsecase
	logger *slog.Logger
	config HTTPConfig
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Message        string   `json:"message"`
	Version        string   `json:"version"`
	Rooms          []string `json:"rooms"`
	ConnectedUsers int      `json:"connectedUsers"`
}

type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details"`
}

// NewHTTPApp builds the read-only HTTP surface and the /ws endpoint.
func NewHTTPApp(uc Usecase, suc StreamUsecase, logger *slog.Logger, config HTTPConfig) *fiber.App {
	if config.ClientURL == "" {
		config.ClientURL = "*"
	}
	h := &HTTPHandler{
		uc:     uc,
		suc:    suc,
		logger: logger,
		config: config,
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          60 * time.Second,
		IdleTimeout:           120 * time.Second,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.ClientURL,
		AllowMethods: "GET,POST",
	}))
	app.Use(h.loggerMiddleware())
	h.setupRoutes(app)
	return app
}

func (h *HTTPHandler) setupRoutes(app *fiber.App) {
	app.Get("/", h.status)
	app.Get("/health", h.health)

	app.Use("/ws", upgradeRequired)
	app.Get("/ws", h.websocketHandler())

	api := app.Group("/api")
	api.Get("/rooms", h.listRooms)
	api.Get("/users", h.listUsers)
	api.Get("/users/:roomId", h.listUsers)
	api.Get("/messages/:roomId", h.listMessages)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}

func (h *HTTPHandler) loggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Upgrade") == "websocket" {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()
		h.logger.Info("http request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).String(),
		)
		return err
	}
}

func (h *HTTPHandler) status(c *fiber.Ctx) error {
	rooms, err := h.uc.ListRooms("")
	if err != nil {
		return err
	}
	return c.JSON(StatusResponse{
		Message:        "Chat server is running",
		Version:        version,
		Rooms:          rooms,
		ConnectedUsers: h.uc.Status().ConnectedUsers,
	})
}

func (h *HTTPHandler) health(c *fiber.Ctx) error {
	status := h.uc.Status()
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"rooms":           status.Rooms,
			"connected_users": status.ConnectedUsers,
			"messages":        status.Messages,
			"active_sessions": status.Stream.ActiveSessions,
			"delivered":       status.Stream.Delivered,
			"dropped":         status.Stream.Dropped,
			"uptime":          status.Stream.Uptime,
		},
	})
}

func (h *HTTPHandler) listRooms(c *fiber.Ctx) error {
	rooms, err := h.uc.ListRooms(c.Query("pattern"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "list_failed",
			Message: err.Error(),
		})
	}
	return c.JSON(rooms)
}

func (h *HTTPHandler) listUsers(c *fiber.Ctx) error {
	return c.JSON(h.uc.ListUsers(c.Params("roomId")))
}

// listMessages answers with an empty page for rooms that do not exist.
func (h *HTTPHandler) listMessages(c *fiber.Ctx) error {
	page := max(c.QueryInt("page", 0), 0)
	limit := c.QueryInt("limit", domain.DefaultPageSize)
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	result, err := h.uc.ListMessages(c.Params("roomId"), page, limit)
	if errors.Is(err, domain.ErrNotFound) {
		return c.JSON(domain.PageResult{Messages: []domain.Message{}, Page: page})
	}
	if err != nil {
		return err
	}
	return c.JSON(result)
}
