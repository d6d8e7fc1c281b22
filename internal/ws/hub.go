package ws

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Hub owns the refresh counter and fans every bump out to the connected
// dashboards.
type Hub struct {
	log *zap.Logger

	version atomic.Int64

	mu      sync.RWMutex
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	closeOnce  sync.Once
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	h := &Hub{
		log:        log,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

// Version returns the current value of the refresh counter.
func (h *Hub) Version() int64 {
	return h.version.Load()
}

// Notify bumps the refresh counter and pushes it to every dashboard.
func (h *Hub) Notify(reason string) {
	v := h.version.Add(1)
	b, err := json.Marshal(Envelope{Type: TypeQuestionsChanged, Payload: RefreshPayload{Version: v, Reason: reason}})
	if err != nil {
		h.log.Error("ws notify marshal failed", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- b:
	case <-h.done:
	default:
		h.log.Warn("ws broadcast queue full, dropping refresh", zap.Int64("version", v))
	}
}

// Clients reports how many dashboards are connected.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			h.mu.Unlock()

			if b, err := json.Marshal(Envelope{Type: TypeHello, Payload: RefreshPayload{Version: h.Version()}}); err == nil {
				c.send <- b
			}

			h.log.Info("ws client registered", zap.String("remote", c.remote))

		case c := <-h.unregister:
			h.drop(c)

		case msg := <-h.broadcast:
			h.mu.RLock()
			var slow []*Client
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					slow = append(slow, c)
				}
			}
			h.mu.RUnlock()

			for _, c := range slow {
				h.drop(c)
			}

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) drop(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		h.log.Info("ws client unregistered", zap.String("remote", c.remote))
	}
}
