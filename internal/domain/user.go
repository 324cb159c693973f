package domain

import "time"

// DefaultLanguage is assigned to every user on first contact
const DefaultLanguage = "uz"

// User represents a bot user
type User struct {
	UserID    int64
	Handle    string
	Language  string
	CreatedAt time.Time
}

// ConversationState represents user's current interaction mode
type ConversationState string

const (
	StateNormal           ConversationState = "normal"
	StateAwaitingFeedback ConversationState = "awaiting_feedback"
)

// StateData holds transient per-user conversation data
type StateData struct {
	State     ConversationState
	MessageID int // Last bot message, for edit-or-replace presentation
}

// Normalized returns a copy with an empty state replaced by StateNormal
func (s StateData) Normalized() StateData {
	if s.State == "" {
		s.State = StateNormal
	}
	return s
}
