// Package websocket carries live play: clients keep one socket open, send
// voice-action frames, and receive scene frames back. The same orchestrator
// runs underneath; the socket adds no game semantics.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/voxquest/server/domain/entities"
	"github.com/voxquest/server/usecase"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Base64 audio under the 10 MiB
	// decoded ceiling fits with headroom.
	maxMessageSize = 16 << 20

	// Bound on one turn through the pipeline.
	turnTimeout = 90 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Hub maintains the set of active clients.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	voiceActions *usecase.VoiceActionService
	logger       *zap.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(voiceActions *usecase.VoiceActionService, logger *zap.Logger) *Hub {
	return &Hub{
		clients:      make(map[string]*Client),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		voiceActions: voiceActions,
		logger:       logger,
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			h.mu.Unlock()
			h.logger.Info("client registered", zap.String("clientID", client.id))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("client unregistered", zap.String("clientID", client.id))
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Client is a middleman between the websocket connection and the hub.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	id     string
	logger *zap.Logger
}

// HandleWebSocket upgrades the request and starts the client's pumps.
func HandleWebSocket(hub *Hub, c echo.Context, logger *zap.Logger) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 16),
		id:     uuid.NewString(),
		logger: logger,
	}

	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}

// readPump pumps messages from the websocket connection into the pipeline.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", zap.Error(err))
			}
			break
		}

		if messageType != websocket.TextMessage {
			c.logger.Warn("ignoring non-text frame", zap.Int("type", messageType))
			continue
		}

		c.handleVoiceAction(message)

		// A turn can run up to turnTimeout, longer than pongWait, and no
		// pong is read while it does. Start a fresh deadline before the
		// next read so a slow turn does not drop the connection.
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

// writePump pumps messages from the hub to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error("failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleVoiceAction runs one inbound frame through the orchestrator and
// queues the reply.
func (c *Client) handleVoiceAction(payload []byte) {
	req, err := ParseVoiceActionMessage(payload)
	if err != nil {
		c.logger.Warn("rejecting frame", zap.String("clientID", c.id), zap.Error(err))
		c.reply(ErrorMessage{Type: MessageTypeError, Error: "invalid_message", Details: err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), turnTimeout)
	defer cancel()

	result, err := c.hub.voiceActions.Process(ctx, req)
	if err != nil {
		c.reply(errorMessageFor(err))
		return
	}

	c.reply(NewSceneMessage(result))
}

// errorMessageFor maps pipeline errors onto outbound frames, mirroring the
// HTTP status mapping.
func errorMessageFor(err error) ErrorMessage {
	var reqErr *entities.RequestError
	if errors.As(err, &reqErr) {
		return ErrorMessage{Type: MessageTypeError, Error: reqErr.Reason, Details: reqErr.Details}
	}

	var intErr *entities.InternalError
	if errors.As(err, &intErr) {
		msg := ErrorMessage{Type: MessageTypeError, Error: "internal_error"}
		if intErr.Fallback != nil {
			fallback := NewSceneMessage(intErr.Fallback)
			msg.Fallback = &fallback
		}
		return msg
	}

	return ErrorMessage{Type: MessageTypeError, Error: "internal_error"}
}

// reply marshals and queues an outbound frame, dropping it if the client's
// buffer is full rather than blocking the read loop.
func (c *Client) reply(msg interface{}) {
	payload, err := json.Marshal(msg)
	if err != nil {
		c.logger.Error("failed to marshal frame", zap.Error(err))
		return
	}

	select {
	case c.send <- payload:
	default:
		c.logger.Warn("dropping frame for slow client", zap.String("clientID", c.id))
	}
}
