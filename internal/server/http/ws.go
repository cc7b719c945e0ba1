package httpserver

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}

type wsClient struct {
	send chan []byte
}

// sendJSON 不阻塞；客户端太慢时直接丢消息
func (c *wsClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// Hub 按对局 ID 分组的 websocket 客户端
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*wsClient]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*wsClient]struct{})}
}

func (h *Hub) Register(gameID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[gameID]
	if !ok {
		set = make(map[*wsClient]struct{})
		h.clients[gameID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) Unregister(gameID string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set := h.clients[gameID]
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, gameID)
	}
}

func (h *Hub) Broadcast(gameID string, msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients[gameID] {
		c.sendJSON(msg)
	}
}

func (h *Hub) Count(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[gameID])
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// serveGameWS 推送某一局的状态：连上先发一次，之后每次落子推一次
func (h *Handler) serveGameWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, err := h.games.Get(id)
	if err != nil {
		writeError(w, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &wsClient{send: make(chan []byte, 16)}
	h.hub.Register(id, client)
	client.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(stateFromSnapshot(s))})

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.hub.Unregister(id, client)
			return
		}
		var msg wsMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "request_state" {
			if s, err := h.games.Get(id); err == nil {
				client.sendJSON(wsMessage{Type: "state", Payload: mustMarshal(stateFromSnapshot(s))})
			}
		}
	}
}
