package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types streamed to school administrators
const (
	EventStudentRegistered = "student.registered"
	EventTeacherRegistered = "teacher.registered"
	EventVoucherConsumed   = "voucher.consumed"
	EventVouchersGenerated = "vouchers.generated"
	EventStudentCreated    = "student.created"
	EventStudentImported   = "student.imported"
	EventStudentStatus     = "student.status_changed"
)

// broadcastBuffer bounds how many events may wait for the hub loop
const broadcastBuffer = 256

// Event is a single notification for the admins of one school
type Event struct {
	// Type of event, one of the Event* constants
	Type string `json:"type"`

	// School the event belongs to; clients of other schools never see it
	SchoolID int64 `json:"schoolId"`

	// Event specific body
	Payload interface{} `json:"payload,omitempty"`

	// Timestamp when the event was published
	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and fans events out per school
type Hub struct {
	// Registered clients organized by school ID
	clients map[int64]map[*Client]bool

	// Events waiting to be delivered
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Mutex for event listeners
	listenersMu sync.RWMutex

	// Event listeners, used by in-process consumers and tests
	listeners []chan *Event

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// Publish queues an event for the school's admins. It never blocks: when the queue
// is full the event is dropped and a warning logged.
func (h *Hub) Publish(schoolID int64, eventType string, payload interface{}) {
	event := &Event{
		Type:      eventType,
		SchoolID:  schoolID,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().
			Int64("schoolID", schoolID).
			Str("type", eventType).
			Msg("Event queue full, dropping event")
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.schoolID]; !ok {
		h.clients[client.schoolID] = make(map[*Client]bool)
	}
	h.clients[client.schoolID][client] = true

	h.logger.Info().
		Int64("schoolID", client.schoolID).
		Int64("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

// removeLocked drops a client; the caller holds mu
func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.schoolID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.schoolID)
	}

	h.logger.Info().
		Int64("schoolID", client.schoolID).
		Int64("userID", client.userID).
		Msg("Client unregistered")
}

func (h *Hub) broadcastEvent(event *Event) {
	h.notifyListeners(event)

	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[event.SchoolID]
	if !ok {
		h.logger.Debug().
			Int64("schoolID", event.SchoolID).
			Str("type", event.Type).
			Msg("No clients connected for school")
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("schoolID", event.SchoolID).
			Str("type", event.Type).
			Msg("Failed to marshal event for broadcast")
		return
	}

	for client := range clients {
		select {
		case client.send <- data:
		default:
			// Slow consumer: drop it rather than stall every other school
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Int64("schoolID", event.SchoolID).
		Str("type", event.Type).
		Int("clientCount", len(clients)).
		Msg("Event broadcast to school")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

func (h *Hub) notifyListeners(event *Event) {
	h.listenersMu.RLock()
	defer h.listenersMu.RUnlock()

	for _, listener := range h.listeners {
		select {
		case listener <- event:
		default:
			h.logger.Warn().Msg("Skipped slow event listener")
		}
	}
}

// ClientCount returns the number of connected clients for a school
func (h *Hub) ClientCount(schoolID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[schoolID])
}

// AddListener registers a channel that receives every event
func (h *Hub) AddListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()
	h.listeners = append(h.listeners, listener)
}

// RemoveListener removes a listener from the hub
func (h *Hub) RemoveListener(listener chan *Event) {
	h.listenersMu.Lock()
	defer h.listenersMu.Unlock()

	for i, l := range h.listeners {
		if l == listener {
			h.listeners[i] = h.listeners[len(h.listeners)-1]
			h.listeners = h.listeners[:len(h.listeners)-1]
			break
		}
	}
}
