package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"activity-hub/internal/models"

	"go.uber.org/zap"
)

// MessageToSend defines the structure for sending a message to a specific user.
type MessageToSend struct {
	TargetUserID int64
	Payload      []byte
}

// Event is the JSON frame pushed to clients.
type Event struct {
	Type         string               `json:"type"`
	Notification *models.Notification `json:"notification,omitempty"`
}

const directQueueSize = 1024

// Hub maintains the set of active clients and pushes notifications to the
// connections of their recipients.
type Hub struct {
	// Registered clients. Maps user ID to a set of active client connections.
	Clients map[int64]map[*Client]bool

	// Channel for sending messages to specific users.
	SendDirect chan *MessageToSend

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	logger *zap.SugaredLogger
	done   chan struct{}

	// Mutex to protect concurrent access to the clients map.
	mu sync.RWMutex
}

func NewHub(logger *zap.SugaredLogger) *Hub {
	return &Hub{
		SendDirect: make(chan *MessageToSend, directQueueSize),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run starts the hub's processing loop. It returns when ctx is done, after
// closing every client's send channel.
func (h *Hub) Run(ctx context.Context) {
	h.logger.Infof("WebSocket Hub started")
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			h.logger.Infof("WebSocket Hub stopped")
			return

		case client := <-h.Register:
			h.mu.Lock()
			if _, ok := h.Clients[client.UserID]; !ok {
				h.Clients[client.UserID] = make(map[*Client]bool)
			}
			h.Clients[client.UserID][client] = true
			h.logger.Infof("WebSocket client %s registered for user %d (%d connections)", client.ID, client.UserID, len(h.Clients[client.UserID]))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if userClients, ok := h.Clients[client.UserID]; ok {
				if _, clientOk := userClients[client]; clientOk {
					delete(userClients, client)
					close(client.Send)
					if len(userClients) == 0 {
						delete(h.Clients, client.UserID)
					}
					h.logger.Infof("WebSocket client %s unregistered for user %d", client.ID, client.UserID)
				}
			}
			h.mu.Unlock()

		case directMessage := <-h.SendDirect:
			h.mu.RLock()
			for client := range h.Clients[directMessage.TargetUserID] {
				select {
				case client.Send <- directMessage.Payload:
				default:
					h.logger.Warnf("Send channel full for client %s of user %d, message dropped", client.ID, client.UserID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, userClients := range h.Clients {
		for client := range userClients {
			close(client.Send)
		}
		delete(h.Clients, userID)
	}
}

// Attach hands c to the running hub. It reports false once the hub has
// stopped.
func (h *Hub) Attach(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
	}
}

// ConnectionCount returns the number of open connections of a user.
func (h *Hub) ConnectionCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Clients[userID])
}

// SendDirectMessage queues payload for every connection of the user. It
// never blocks; when the queue is full the message is dropped.
func (h *Hub) SendDirectMessage(targetUserID int64, payload []byte) {
	message := &MessageToSend{
		TargetUserID: targetUserID,
		Payload:      payload,
	}
	select {
	case h.SendDirect <- message:
	default:
		h.logger.Warnf("WebSocket hub queue full, dropping message for user %d", targetUserID)
	}
}

// Notify pushes a notification to its recipient's open connections.
func (h *Hub) Notify(n *models.Notification) {
	payload, err := json.Marshal(Event{Type: "notification", Notification: n})
	if err != nil {
		h.logger.Errorf("WebSocket hub: failed to encode notification %d: %v", n.ID, err)
		return
	}
	h.SendDirectMessage(n.UserID, payload)
}
