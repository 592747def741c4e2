package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"webond/internal/domain/entity"
	"webond/pkg/logger"
)

// Client is one authenticated WebSocket connection.
type Client struct {
	UserID     string
	Conn       *websocket.Conn
	Send       chan []byte
	ActiveRoom string
}

// MessageSink persists and authorizes chat traffic on behalf of the
// manager, so the transport layer stays free of storage concerns.
type MessageSink interface {
	Authorize(ctx context.Context, chatID, userID string) error
	SaveIncoming(ctx context.Context, chatID, senderID, content string) (*entity.Message, error)
}

// Manager tracks connected clients and chat room membership.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	sink       MessageSink
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// SetSink wires the chat persistence layer. Must be called before Start.
func (m *Manager) SetSink(sink MessageSink) {
	m.sink = sink
}

// Start runs the manager's main loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("WebSocket client connected: %s", client.UserID)

			case client := <-m.Unregister:
				m.removeClient(client)
				logger.Debug("WebSocket client disconnected: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) removeClient(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, ok := m.clients[client.UserID]; ok {
		delete(m.clients, client.UserID)
		close(client.Send)
	}
	for roomID, members := range m.rooms {
		if _, ok := members[client.UserID]; ok {
			delete(members, client.UserID)
			if len(members) == 0 {
				delete(m.rooms, roomID)
			}
		}
	}
}

// JoinRoom adds the client to a chat room.
func (m *Manager) JoinRoom(roomID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.rooms[roomID] == nil {
		m.rooms[roomID] = make(map[string]*Client)
	}
	m.rooms[roomID][client.UserID] = client
}

// InRoom reports whether the client has joined the room.
func (m *Manager) InRoom(roomID string, client *Client) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, ok := m.rooms[roomID][client.UserID]
	return ok
}

// LeaveRoom removes the client from a chat room.
func (m *Manager) LeaveRoom(roomID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if members, ok := m.rooms[roomID]; ok {
		delete(members, client.UserID)
		if len(members) == 0 {
			delete(m.rooms, roomID)
		}
	}
}

// BroadcastToRoom delivers a message to every client in the room.
func (m *Manager) BroadcastToRoom(roomID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.rooms[roomID] {
		select {
		case client.Send <- message:
		default:
			logger.Warn("WebSocket send buffer full, dropping message for %s", client.UserID)
		}
	}
}

// BroadcastToRoomExcept delivers a message to every client in the room
// except the given user.
func (m *Manager) BroadcastToRoomExcept(roomID, exceptUserID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for userID, client := range m.rooms[roomID] {
		if userID == exceptUserID {
			continue
		}
		select {
		case client.Send <- message:
		default:
			logger.Warn("WebSocket send buffer full, dropping message for %s", userID)
		}
	}
}

// SendToUser delivers a message to a specific connected user.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		select {
		case client.Send <- message:
		default:
			logger.Warn("WebSocket send buffer full, dropping message for %s", userID)
		}
	}
}

// ReadPump reads frames from the connection until it closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		m.HandleClientMessage(c, message)
	}
}

// WritePump drains the send channel onto the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
