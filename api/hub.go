package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// sendBuffer is the number of queued messages a subscriber may fall behind by
// before it is dropped.
const sendBuffer = 64

// Hub fans panel events out to websocket subscribers. It is safe for
// concurrent use.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*subscriber]struct{}
	upgrader websocket.Upgrader
	logger   *log.Logger
}

type subscriber struct {
	ws   *websocket.Conn
	send chan []byte
	once sync.Once
}

func (s *subscriber) close() { s.once.Do(func() { close(s.send) }) }

// NewHub returns a hub with no subscribers. A nil logger is silent.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}

// ServeHTTP upgrades the request and keeps the subscription until the peer
// goes away. Inbound messages are ignored.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logf("websocket upgrade: %v", err)
		return
	}
	s := &subscriber{ws: ws, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[s] = struct{}{}
	h.mu.Unlock()

	go s.writePump()
	h.readPump(s)
}

func (h *Hub) readPump(s *subscriber) {
	defer func() {
		h.remove(s)
		s.ws.Close()
	}()
	for {
		if _, _, err := s.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logf("websocket read: %v", err)
			}
			return
		}
	}
}

func (s *subscriber) writePump() {
	defer s.ws.Close()
	for msg := range s.send {
		if err := s.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	_ = s.ws.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	_, ok := h.clients[s]
	delete(h.clients, s)
	h.mu.Unlock()
	if ok {
		s.close()
	}
}

// Broadcast sends v as JSON to every subscriber. Subscribers whose queue is
// full are disconnected.
func (h *Hub) Broadcast(v any) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var slow []*subscriber
	h.mu.RLock()
	for s := range h.clients {
		select {
		case s.send <- msg:
		default:
			slow = append(slow, s)
		}
	}
	h.mu.RUnlock()
	for _, s := range slow {
		h.logf("websocket subscriber too slow, dropping")
		h.remove(s)
	}
	return nil
}

// Len returns the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*subscriber]struct{})
	h.mu.Unlock()
	for s := range clients {
		s.close()
	}
}
