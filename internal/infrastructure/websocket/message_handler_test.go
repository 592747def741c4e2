package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webond/internal/domain/entity"
)

type fakeSink struct {
	participants map[string][]string
}

func (s *fakeSink) Authorize(ctx context.Context, chatID, userID string) error {
	for _, participant := range s.participants[chatID] {
		if participant == userID {
			return nil
		}
	}
	return fmt.Errorf("not a participant")
}

func (s *fakeSink) SaveIncoming(ctx context.Context, chatID, senderID, content string) (*entity.Message, error) {
	return &entity.Message{ChatID: chatID, SenderID: senderID, Content: content, Type: "text"}, nil
}

func newTestClient(userID string) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 8)}
}

func frame(t *testing.T, messageType string, data interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	encoded, err := json.Marshal(WSMessage{Type: messageType, Data: raw})
	require.NoError(t, err)
	return encoded
}

func receivedType(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case raw := <-client.Send:
		var message WSMessage
		require.NoError(t, json.Unmarshal(raw, &message))
		return message.Type
	default:
		return ""
	}
}

func TestTypingRelayedToRoomMembers(t *testing.T) {
	m := NewManager()
	m.SetSink(&fakeSink{participants: map[string][]string{"chat-1": {"alice", "bob"}}})

	alice := newTestClient("alice")
	bob := newTestClient("bob")

	m.HandleClientMessage(alice, frame(t, MessageTypeJoinRoom, joinRoomData{ChatID: "chat-1"}))
	m.HandleClientMessage(bob, frame(t, MessageTypeJoinRoom, joinRoomData{ChatID: "chat-1"}))

	m.HandleClientMessage(alice, frame(t, MessageTypeTyping, typingData{ChatID: "chat-1", IsTyping: true}))

	assert.Equal(t, MessageTypeUserTyping, receivedType(t, bob))
	assert.Equal(t, "", receivedType(t, alice))
}

func TestTypingRejectedOutsideRoom(t *testing.T) {
	m := NewManager()
	m.SetSink(&fakeSink{participants: map[string][]string{"chat-1": {"alice", "bob"}}})

	bob := newTestClient("bob")
	m.HandleClientMessage(bob, frame(t, MessageTypeJoinRoom, joinRoomData{ChatID: "chat-1"}))

	mallory := newTestClient("mallory")
	m.HandleClientMessage(mallory, frame(t, MessageTypeTyping, typingData{ChatID: "chat-1", IsTyping: true}))

	assert.Equal(t, MessageTypeError, receivedType(t, mallory))
	assert.Equal(t, "", receivedType(t, bob))
}

func TestJoinRoomRejectsNonParticipant(t *testing.T) {
	m := NewManager()
	m.SetSink(&fakeSink{participants: map[string][]string{"chat-1": {"alice", "bob"}}})

	mallory := newTestClient("mallory")
	m.HandleClientMessage(mallory, frame(t, MessageTypeJoinRoom, joinRoomData{ChatID: "chat-1"}))

	assert.Equal(t, MessageTypeError, receivedType(t, mallory))
	assert.False(t, m.InRoom("chat-1", mallory))
}
