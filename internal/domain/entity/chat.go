package entity

import "time"

// Chat is the per-task message thread between raiser and solver. It is
// created when the task is accepted.
type Chat struct {
	ID           string   `json:"id" firestore:"id"`
	TaskID       string   `json:"task_id" firestore:"taskId"`
	Participants []string `json:"participants" firestore:"participants"`

	LastMessage   string    `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time `json:"last_message_at" firestore:"lastMessageAt"`

	UnreadCount map[string]int `json:"unread_count" firestore:"unreadCount"` // userID -> unread messages

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether the user belongs to this chat.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
