package events

import (
	"net/http"
	"sync"
	"time"

	"erp-ledger/internal/logger"
	"erp-ledger/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultBuffer = 256
	writeTimeout  = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans ledger events out to websocket subscribers
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan models.LedgerEvent
	done       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	log        zerolog.Logger
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan models.LedgerEvent, defaultBuffer),
		done:      make(chan struct{}),
		log:       logger.WithComponent("event_hub"),
	}
}

// Start runs the broadcaster until Stop is called
func (h *Hub) Start() {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		for {
			select {
			case event := <-h.broadcast:
				h.send(event)
			case <-h.done:
				return
			}
		}
	}()
}

// Stop ends the broadcaster and disconnects every subscriber
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
		h.wg.Wait()

		h.clientsMux.Lock()
		for client := range h.clients {
			client.Close()
			delete(h.clients, client)
		}
		h.clientsMux.Unlock()
	})
}

// Publish queues an event. When the queue is full the event is dropped.
func (h *Hub) Publish(event models.LedgerEvent) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn().Str("type", string(event.Type)).Str("invoice_id", event.InvoiceID).Msg("Event queue full, dropping event")
	}
}

// Subscribers returns the number of connected clients
func (h *Hub) Subscribers() int {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()
	return len(h.clients)
}

// HandleWebSocket upgrades the request and keeps the client registered until it disconnects
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.stopped() {
		http.Error(w, "event stream closed", http.StatusServiceUnavailable)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// Stop clears clients under the same lock after closing done
	h.clientsMux.Lock()
	if h.stopped() {
		h.clientsMux.Unlock()
		return
	}
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			return
		}
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *Hub) send(event models.LedgerEvent) {
	h.clientsMux.Lock()
	defer h.clientsMux.Unlock()

	for client := range h.clients {
		client.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := client.WriteJSON(event); err != nil {
			client.Close()
			delete(h.clients, client)
		}
	}
}
