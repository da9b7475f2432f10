package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/jsamuelsen/portfolio/internal/adapters/http/dto"
	"github.com/jsamuelsen/portfolio/internal/app"
	"github.com/jsamuelsen/portfolio/internal/platform/logging"
	"github.com/jsamuelsen/portfolio/internal/scroll"
)

// Stream defaults.
const (
	DefaultFrameInterval   = 16 * time.Millisecond
	DefaultMaxMessageBytes = 16 << 10
	DefaultWriteTimeout    = 5 * time.Second

	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// noticeBuffer bounds the error frames waiting for the writer; extra
	// notices are dropped.
	noticeBuffer = 8
)

// ScrollHandlerConfig contains the scroll handler dependencies.
type ScrollHandlerConfig struct {
	Scroll          *app.ScrollService
	FrameInterval   time.Duration
	MaxMessageBytes int64
	WriteTimeout    time.Duration
}

// ScrollHandler evaluates layout measurements, one per request or as a
// websocket stream answered at most once per frame.
type ScrollHandler struct {
	scroll          *app.ScrollService
	frameInterval   time.Duration
	maxMessageBytes int64
	writeTimeout    time.Duration
	upgrader        websocket.Upgrader

	closing   chan struct{}
	closeOnce sync.Once
}

// NewScrollHandler creates a scroll handler. Zero config values take the defaults.
func NewScrollHandler(cfg ScrollHandlerConfig) *ScrollHandler {
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = DefaultFrameInterval
	}

	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = DefaultMaxMessageBytes
	}

	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	return &ScrollHandler{
		scroll:          cfg.Scroll,
		frameInterval:   cfg.FrameInterval,
		maxMessageBytes: cfg.MaxMessageBytes,
		writeTimeout:    cfg.WriteTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		closing: make(chan struct{}),
	}
}

// Close ends every open stream with a going-away close frame. The HTTP
// server's shutdown does not track hijacked websocket connections.
func (h *ScrollHandler) Close() {
	h.closeOnce.Do(func() { close(h.closing) })
}

// Evaluate handles POST /api/v1/scroll.
func (h *ScrollHandler) Evaluate(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	var req dto.MeasurementRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.scroll.Evaluate(s, req.ToDomain(), app.TransportHTTP))
}

// Stream handles GET /api/v1/scroll/stream.
//
// The client sends measurements as fast as it likes. A reader goroutine
// keeps only the newest; the handler evaluates it once per frame tick and
// writes the frame. A malformed message is answered with an error frame and
// the connection stays open.
func (h *ScrollHandler) Stream(c *gin.Context) {
	s, ok := visitor(c)
	if !ok {
		return
	}

	logger := logging.FromContext(c.Request.Context())

	// Upgrade writes its own response; carry over a new visitor's cookies.
	var header http.Header
	if cookies := c.Writer.Header().Values("Set-Cookie"); len(cookies) > 0 {
		header = http.Header{"Set-Cookie": cookies}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, header)
	if err != nil {
		// Upgrade has already written the HTTP error.
		logger.Warn("scroll stream upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	h.scroll.StreamOpened()
	defer h.scroll.StreamClosed()

	var pending scroll.Coalescer
	notices := make(chan dto.StreamMessage, noticeBuffer)
	done := make(chan struct{})

	go func() {
		defer close(done)
		h.readLoop(conn, &pending, notices, logger)
	}()

	h.writeLoop(conn, s, &pending, notices, done, logger)
}

func (h *ScrollHandler) readLoop(
	conn *websocket.Conn,
	pending *scroll.Coalescer,
	notices chan<- dto.StreamMessage,
	logger *slog.Logger,
) {
	conn.SetReadLimit(h.maxMessageBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("scroll stream read ended", slog.Any("error", err))
			}
			return
		}

		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		var req dto.MeasurementRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			notify(notices, dto.NewStreamError(dto.ErrorCodeBadRequest, "malformed measurement", nil))
			continue
		}

		if err := dto.Validate(req); err != nil {
			notify(notices, dto.NewStreamError(dto.ErrorCodeValidation, "invalid measurement", dto.FieldErrors(err)))
			continue
		}

		pending.Offer(req.ToDomain())
	}
}

func (h *ScrollHandler) writeLoop(
	conn *websocket.Conn,
	s *app.Session,
	pending *scroll.Coalescer,
	notices <-chan dto.StreamMessage,
	done <-chan struct{},
	logger *slog.Logger,
) {
	frames := time.NewTicker(h.frameInterval)
	defer frames.Stop()

	pings := time.NewTicker(pingPeriod)
	defer pings.Stop()

	for {
		select {
		case <-done:
			return

		case <-h.closing:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(h.writeTimeout))
			return

		case notice := <-notices:
			if !h.write(conn, notice, logger) {
				return
			}

		case <-frames.C:
			m, dropped, ok := pending.Take()
			if !ok {
				continue
			}

			h.scroll.Coalesced(dropped)
			frame := h.scroll.Evaluate(s, m, app.TransportStream)

			if !h.write(conn, dto.NewFrameMessage(frame), logger) {
				return
			}

		case <-pings.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(h.writeTimeout)); err != nil {
				return
			}
		}
	}
}

func (h *ScrollHandler) write(conn *websocket.Conn, msg dto.StreamMessage, logger *slog.Logger) bool {
	_ = conn.SetWriteDeadline(time.Now().Add(h.writeTimeout))

	if err := conn.WriteJSON(msg); err != nil {
		logger.Debug("scroll stream write failed", slog.Any("error", err))
		return false
	}

	return true
}

// notify queues msg for the writer, dropping it when the queue is full.
func notify(notices chan<- dto.StreamMessage, msg dto.StreamMessage) {
	select {
	case notices <- msg:
	default:
	}
}

// RegisterAPIRoutes registers the scroll routes on the /api/v1 group. The
// stream route must not sit behind the request timeout.
func (h *ScrollHandler) RegisterAPIRoutes(rg gin.IRoutes) {
	rg.POST("/scroll", h.Evaluate)
}

// RegisterStreamRoute registers the websocket route on the /api/v1 group.
func (h *ScrollHandler) RegisterStreamRoute(rg gin.IRoutes) {
	rg.GET("/scroll/stream", h.Stream)
}
