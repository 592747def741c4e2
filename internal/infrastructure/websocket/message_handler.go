package websocket

import (
	"context"
	"encoding/json"
	"time"

	"webond/internal/domain/entity"
	apperrors "webond/pkg/errors"
	"webond/pkg/logger"
)

const (
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
	MessageTypeJoinRoom    = "join_room"
	MessageTypeLeaveRoom   = "leave_room"
	MessageTypeSendMessage = "send_message"
	MessageTypeNewMessage  = "new_message"
	MessageTypeTyping      = "typing"
	MessageTypeUserTyping  = "user_typing"
	MessageTypeError       = "error"
)

type WSMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

type joinRoomData struct {
	ChatID string `json:"chat_id"`
}

type sendMessageData struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

type typingData struct {
	ChatID   string `json:"chat_id"`
	UserID   string `json:"user_id"`
	IsTyping bool   `json:"is_typing"`
}

type newMessageData struct {
	ID        string `json:"id"`
	ChatID    string `json:"chat_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// HandleClientMessage dispatches one inbound frame.
func (m *Manager) HandleClientMessage(client *Client, messageBytes []byte) {
	var wsMessage WSMessage
	if err := json.Unmarshal(messageBytes, &wsMessage); err != nil {
		m.sendErrorToClient(client, "Invalid message format")
		return
	}

	switch wsMessage.Type {
	case MessageTypePing:
		m.handlePing(client)

	case MessageTypeJoinRoom:
		m.handleJoinRoom(client, wsMessage.Data)

	case MessageTypeLeaveRoom:
		m.handleLeaveRoom(client, wsMessage.Data)

	case MessageTypeSendMessage:
		m.handleSendMessage(client, wsMessage.Data)

	case MessageTypeTyping:
		m.handleTyping(client, wsMessage.Data)

	default:
		m.sendErrorToClient(client, "Unknown message type")
	}
}

func (m *Manager) handlePing(client *Client) {
	m.sendToClient(client, MessageTypePong, map[string]string{"status": "alive"})
}

func (m *Manager) handleJoinRoom(client *Client, data json.RawMessage) {
	var join joinRoomData
	if err := json.Unmarshal(data, &join); err != nil || join.ChatID == "" {
		m.sendErrorToClient(client, "Missing chat_id")
		return
	}

	if m.sink != nil {
		if err := m.sink.Authorize(context.Background(), join.ChatID, client.UserID); err != nil {
			m.sendErrorToClient(client, "Not a participant of this chat")
			return
		}
	}

	m.JoinRoom(join.ChatID, client)
	client.ActiveRoom = join.ChatID
	logger.Debug("WebSocket: %s joined room %s", client.UserID, join.ChatID)
}

func (m *Manager) handleLeaveRoom(client *Client, data json.RawMessage) {
	var leave joinRoomData
	if err := json.Unmarshal(data, &leave); err != nil || leave.ChatID == "" {
		m.sendErrorToClient(client, "Missing chat_id")
		return
	}

	m.LeaveRoom(leave.ChatID, client)
	if client.ActiveRoom == leave.ChatID {
		client.ActiveRoom = ""
	}
}

func (m *Manager) handleSendMessage(client *Client, data json.RawMessage) {
	var send sendMessageData
	if err := json.Unmarshal(data, &send); err != nil {
		m.sendErrorToClient(client, "Invalid send_message payload")
		return
	}
	if send.ChatID == "" || send.Content == "" {
		m.sendErrorToClient(client, "Missing chat_id or content")
		return
	}

	if m.sink == nil {
		m.sendErrorToClient(client, "Chat is unavailable")
		return
	}

	message, err := m.sink.SaveIncoming(context.Background(), send.ChatID, client.UserID, send.Content)
	if err != nil {
		if apperrors.Is(err, "TOO_MANY_REQUESTS") {
			m.sendErrorToClient(client, "Too many messages, slow down")
			return
		}
		logger.Error("WebSocket: failed to store message from %s: %v", client.UserID, err)
		m.sendErrorToClient(client, "Failed to send message")
		return
	}

	m.BroadcastNewMessage(message)
}

// BroadcastNewMessage fans a stored message out to the chat room. Also
// used by the HTTP send path so REST and WebSocket senders converge.
func (m *Manager) BroadcastNewMessage(message *entity.Message) {
	payload := newMessageData{
		ID:        message.ID,
		ChatID:    message.ChatID,
		SenderID:  message.SenderID,
		Content:   message.Content,
		Type:      message.Type,
		CreatedAt: message.CreatedAt.Format(time.RFC3339),
	}

	frame, err := marshalFrame(MessageTypeNewMessage, payload)
	if err != nil {
		logger.Error("WebSocket: failed to marshal new_message: %v", err)
		return
	}

	m.BroadcastToRoom(message.ChatID, frame)
}

func (m *Manager) handleTyping(client *Client, data json.RawMessage) {
	var typing typingData
	if err := json.Unmarshal(data, &typing); err != nil || typing.ChatID == "" {
		m.sendErrorToClient(client, "Invalid typing payload")
		return
	}

	// Room membership is only granted after the join_room authorization,
	// so it doubles as the participant check here.
	if !m.InRoom(typing.ChatID, client) {
		m.sendErrorToClient(client, "Not a participant of this chat")
		return
	}

	typing.UserID = client.UserID

	frame, err := marshalFrame(MessageTypeUserTyping, typing)
	if err != nil {
		return
	}

	m.BroadcastToRoomExcept(typing.ChatID, client.UserID, frame)
}

func marshalFrame(messageType string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{
		Type:      messageType,
		Data:      raw,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (m *Manager) sendToClient(client *Client, messageType string, data interface{}) {
	frame, err := marshalFrame(messageType, data)
	if err != nil {
		logger.Error("WebSocket: failed to marshal %s frame: %v", messageType, err)
		return
	}

	select {
	case client.Send <- frame:
	default:
		logger.Warn("WebSocket: send buffer full for %s", client.UserID)
	}
}

func (m *Manager) sendErrorToClient(client *Client, errorMsg string) {
	m.sendToClient(client, MessageTypeError, map[string]string{"error": errorMsg})
}
