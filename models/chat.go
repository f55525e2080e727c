package models

import "time"

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage lives only in memory for the duration of a chat session.
type ChatMessage struct {
	Role ChatRole
	Text string
}

// ChatHistoryRecord is one question/answer pair persisted to chat_history.
// Timestamp is assigned by the backend when left zero.
type ChatHistoryRecord struct {
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
