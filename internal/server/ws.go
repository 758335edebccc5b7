package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/resolve"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the envelope for every frame on a seat connection.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ActionMessage is a seat's request to play a card.
type ActionMessage struct {
	CardID  string `json:"card_id"`
	Targets []int  `json:"targets,omitempty"`
}

// ActionHandler runs a seat's action and returns the payload sent back
// on the same connection.
type ActionHandler func(seat int, action ActionMessage) (any, error)

type client struct {
	seat int
	conn *websocket.Conn
	send chan []byte
}

func (c *client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}

// ChoiceHub delivers choice requests to seat connections and collects
// their answers. Its Choose method satisfies resolve.ChoiceCallback.
type ChoiceHub struct {
	logger   *zap.Logger
	timeout  time.Duration
	onAction ActionHandler

	mu      sync.Mutex
	seats   map[int]*client
	pending map[string]chan resolve.ChoiceResult
}

// NewChoiceHub creates a hub. A zero timeout waits indefinitely for
// answers.
func NewChoiceHub(timeout time.Duration, logger *zap.Logger) *ChoiceHub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChoiceHub{
		logger:  logger,
		timeout: timeout,
		seats:   make(map[int]*client),
		pending: make(map[string]chan resolve.ChoiceResult),
	}
}

// SetActionHandler installs the handler invoked for "action" frames.
func (h *ChoiceHub) SetActionHandler(handler ActionHandler) {
	h.onAction = handler
}

// ServeWS upgrades the request and binds the connection to the seat
// named in the "seat" query parameter.
func (h *ChoiceHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	seat, err := strconv.Atoi(r.URL.Query().Get("seat"))
	if err != nil {
		http.Error(w, "invalid seat", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{seat: seat, conn: conn, send: make(chan []byte, 16)}
	h.mu.Lock()
	if old, ok := h.seats[seat]; ok {
		close(old.send)
	}
	h.seats[seat] = c
	h.mu.Unlock()

	h.logger.Info("seat connected", zap.Int("seat", seat))
	go c.writePump()
	h.readPump(c)
}

func (h *ChoiceHub) readPump(c *client) {
	defer h.dropClient(c)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.logger.Warn("malformed frame", zap.Int("seat", c.seat), zap.Error(err))
			continue
		}
		switch msg.Type {
		case "choice":
			h.handleChoice(c, msg.Payload)
		case "action":
			h.handleAction(c, msg.Payload)
		default:
			h.logger.Warn("unknown frame type",
				zap.Int("seat", c.seat), zap.String("type", msg.Type))
		}
	}
}

func (h *ChoiceHub) handleChoice(c *client, payload json.RawMessage) {
	var result resolve.ChoiceResult
	if err := json.Unmarshal(payload, &result); err != nil {
		h.logger.Warn("malformed choice result", zap.Int("seat", c.seat), zap.Error(err))
		return
	}
	h.mu.Lock()
	ch, ok := h.pending[result.RequestID]
	if ok {
		delete(h.pending, result.RequestID)
	}
	h.mu.Unlock()
	if !ok {
		h.logger.Warn("choice result without pending request",
			zap.Int("seat", c.seat), zap.String("request_id", result.RequestID))
		return
	}
	ch <- result
}

func (h *ChoiceHub) handleAction(c *client, payload json.RawMessage) {
	if h.onAction == nil {
		return
	}
	var action ActionMessage
	if err := json.Unmarshal(payload, &action); err != nil {
		h.sendTo(c, "error", map[string]string{"error": "malformed action"})
		return
	}
	outcome, err := h.onAction(c.seat, action)
	if err != nil {
		h.sendTo(c, "error", map[string]string{"error": err.Error()})
		return
	}
	h.sendTo(c, "outcome", outcome)
}

func (h *ChoiceHub) dropClient(c *client) {
	h.mu.Lock()
	if h.seats[c.seat] == c {
		delete(h.seats, c.seat)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Info("seat disconnected", zap.Int("seat", c.seat))
}

func (h *ChoiceHub) sendTo(c *client, msgType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		h.logger.Error("marshal payload", zap.Error(err))
		return
	}
	frame, err := json.Marshal(Message{Type: msgType, Payload: raw})
	if err != nil {
		h.logger.Error("marshal frame", zap.Error(err))
		return
	}
	select {
	case c.send <- frame:
	default:
		h.logger.Warn("send buffer full, dropping frame", zap.Int("seat", c.seat))
	}
}

// Choose delivers the request to the connected seat and blocks for the
// answer. A disconnected seat passes when the request allows it and
// errors otherwise, so optional response windows degrade gracefully
// while mandatory decisions surface the fault.
func (h *ChoiceHub) Choose(req resolve.ChoiceRequest) (resolve.ChoiceResult, error) {
	h.mu.Lock()
	c, connected := h.seats[req.Seat]
	var ch chan resolve.ChoiceResult
	if connected {
		ch = make(chan resolve.ChoiceResult, 1)
		h.pending[req.ID] = ch
	}
	h.mu.Unlock()

	if !connected {
		if req.PassAllowed {
			h.logger.Info("seat disconnected, passing choice",
				zap.Int("seat", req.Seat), zap.String("request_id", req.ID))
			return resolve.ChoiceResult{RequestID: req.ID, Confirmation: resolve.Passed}, nil
		}
		return resolve.ChoiceResult{}, fmt.Errorf("seat %d not connected for choice %s", req.Seat, req.ID)
	}

	h.sendTo(c, "choice", req)

	if h.timeout <= 0 {
		return <-ch, nil
	}
	select {
	case result := <-ch:
		return result, nil
	case <-time.After(h.timeout):
		h.mu.Lock()
		delete(h.pending, req.ID)
		h.mu.Unlock()
		if req.PassAllowed {
			h.logger.Info("choice timed out, passing",
				zap.Int("seat", req.Seat), zap.String("request_id", req.ID))
			return resolve.ChoiceResult{RequestID: req.ID, Confirmation: resolve.Passed}, nil
		}
		return resolve.ChoiceResult{}, errors.New("choice timed out")
	}
}
