package ws

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/annavogt-hci/ascend/internal/game"
)

// InMessage is the envelope for inbound named events
type InMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// OutMessage is the envelope for outbound named events
type OutMessage struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type joinPayload struct {
	RoomCode string `json:"room_code"`
}

type playPayload struct {
	Value int `json:"value"`
}

type inputPayload struct {
	InputData string `json:"input_data"`
}

// Hub owns the websocket connections. It decodes inbound events, invokes
// the engine, and delivers the engine's outbound events to the addressed
// participants.
type Hub struct {
	engine   *game.Engine
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*Client // identity -> client
}

// NewHub creates a hub around the engine
func NewHub(engine *game.Engine, log *zap.Logger) *Hub {
	return &Hub{
		engine: engine,
		log:    log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*Client),
	}
}

// ServeWS upgrades the request and assigns the connection its identity
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	client := &Client{
		id:   uuid.New().String(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	h.mu.Lock()
	h.clients[client.id] = client
	h.mu.Unlock()

	h.log.Info("client connected", zap.String("client", client.id))
	go client.writePump()
	go client.readPump()
}

func (h *Hub) handleMessage(c *Client, data []byte) {
	var msg InMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.log.Warn("undecodable message", zap.String("client", c.id), zap.Error(err))
		return
	}

	var events []game.Event
	switch msg.Event {
	case "create_room":
		events = h.engine.CreateRoom(c.id)
	case "join_room":
		var p joinPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		events = h.engine.JoinRoom(c.id, strings.ToUpper(strings.TrimSpace(p.RoomCode)))
	case "start_round", "start_next_round", "start_game":
		events = h.engine.StartRound(c.id)
	case "play_number":
		var p playPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		events = h.engine.Play(c.id, p.Value)
	case "submit_input":
		var p inputPayload
		if err := json.Unmarshal(msg.Data, &p); err != nil {
			return
		}
		events = h.engine.SubmitInput(c.id, p.InputData)
	case "reset_round":
		events = h.engine.ResetRound(c.id)
	default:
		h.log.Warn("unknown event", zap.String("client", c.id), zap.String("event", msg.Event))
		return
	}
	h.Deliver(events)
}

// Deliver sends each event to every addressed participant still connected
func (h *Hub) Deliver(events []game.Event) {
	for _, ev := range events {
		b, err := json.Marshal(OutMessage{Event: ev.Name, Data: ev.Data})
		if err != nil {
			h.log.Error("marshal event", zap.String("event", ev.Name), zap.Error(err))
			continue
		}
		h.mu.RLock()
		for _, id := range ev.To {
			client, ok := h.clients[id]
			if !ok {
				continue
			}
			select {
			case client.send <- b:
			default:
				h.log.Warn("send buffer full, dropping event",
					zap.String("client", id), zap.String("event", ev.Name))
			}
		}
		h.mu.RUnlock()
	}
}

func (h *Hub) dropClient(c *Client) {
	h.mu.Lock()
	if cur, ok := h.clients[c.id]; ok && cur == c {
		delete(h.clients, c.id)
	}
	h.mu.Unlock()
	close(c.send)
	c.conn.Close()

	h.log.Info("client disconnected", zap.String("client", c.id))
	h.Deliver(h.engine.Disconnect(c.id))
}
