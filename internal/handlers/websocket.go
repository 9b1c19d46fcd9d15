package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"stackviz/internal/engine"
	"stackviz/internal/models"
	"stackviz/internal/simulation"
)

const (
	writeWait      = 5 * time.Second
	sendBuffer     = 64
	maxMessageSize = 64 << 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSClient wraps a WebSocket connection and implements engine.Client.
type WSClient struct {
	conn   *websocket.Conn
	eng    *engine.Engine
	logger zerolog.Logger
	sendCh chan models.WSMessage
	done   chan struct{}
}

// NewWSClient creates a WSClient and registers it with the engine.
func NewWSClient(conn *websocket.Conn, eng *engine.Engine, logger zerolog.Logger) *WSClient {
	c := &WSClient{
		conn:   conn,
		eng:    eng,
		logger: logger,
		sendCh: make(chan models.WSMessage, sendBuffer),
		done:   make(chan struct{}),
	}
	go c.writeLoop()
	id := eng.RegisterClient(c)
	c.logger = logger.With().Str("session", id).Logger()
	return c
}

// SendMessage queues a message for async delivery. When the buffer is full
// the oldest queued message is dropped; the newest frame always wins.
func (c *WSClient) SendMessage(msg models.WSMessage) error {
	select {
	case <-c.done:
		return errors.New("client closed")
	default:
	}
	for {
		select {
		case c.sendCh <- msg:
			return nil
		default:
		}
		select {
		case <-c.sendCh:
		default:
		}
	}
}

// writeLoop drains the send channel and writes to the WebSocket.
func (c *WSClient) writeLoop() {
	defer c.conn.Close()
	for {
		select {
		case msg := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

// ReadLoop reads messages from the client and dispatches commands.
func (c *WSClient) ReadLoop() {
	defer func() {
		c.eng.UnregisterClient(c)
		close(c.done)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("websocket read")
			}
			return
		}
		var msg models.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.sendError("invalid message format")
			continue
		}
		c.handleCommand(msg)
	}
}

func (c *WSClient) handleCommand(msg models.WSMessage) {
	var err error
	switch msg.Type {
	case models.TypeStart:
		var req models.StartRequest
		if len(msg.Payload) > 0 {
			if jerr := json.Unmarshal(msg.Payload, &req); jerr != nil {
				c.sendError("invalid start payload")
				return
			}
		}
		err = c.eng.Start(c, req.Message)

	case models.TypeNext:
		err = c.eng.Next(c)

	case models.TypePrev:
		err = c.eng.Prev(c)

	case models.TypeReset:
		err = c.eng.Reset(c)

	case models.TypeDescribe:
		var req models.DescribeRequest
		if jerr := json.Unmarshal(msg.Payload, &req); jerr != nil {
			c.sendError("invalid describe payload")
			return
		}
		payload, _ := json.Marshal(c.eng.Describe(req))
		c.SendMessage(models.WSMessage{Type: models.TypeDescription, Payload: payload})

	default:
		c.sendError("unknown command: " + msg.Type)
	}

	if err != nil {
		if !errors.Is(err, simulation.ErrEmptyMessage) {
			c.logger.Warn().Err(err).Str("command", msg.Type).Msg("command failed")
		}
		c.sendError(err.Error())
	}
}

func (c *WSClient) sendError(message string) {
	payload, _ := json.Marshal(models.ErrorPayload{Message: message})
	c.SendMessage(models.WSMessage{Type: models.TypeError, Payload: payload})
}

// HandleWebSocket is the HTTP handler for WebSocket upgrades.
func HandleWebSocket(eng *engine.Engine, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("websocket upgrade")
			return
		}
		client := NewWSClient(conn, eng, logger)
		client.ReadLoop()
	}
}
