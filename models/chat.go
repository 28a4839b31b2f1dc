package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MessageIntent string

const (
	IntentWeather   MessageIntent = "weather"
	IntentGreeting  MessageIntent = "greeting"
	IntentSmallTalk MessageIntent = "small_talk"
	IntentDiagnosis MessageIntent = "diagnosis"
)

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	RoleUser MessageRole = "user"
	RoleBot  MessageRole = "bot"
)

// Source tags for bot messages.
const (
	SourceAI       = "ai"
	SourceTemplate = "template"
)

// ChatMessage is one entry of a session transcript. Messages are append-only:
// once stored they are never mutated or deleted.
type ChatMessage struct {
	Role      MessageRole `bson:"role" json:"role"`
	Text      string      `bson:"text" json:"text"`
	Source    string      `bson:"source,omitempty" json:"source,omitempty"`
	Timestamp time.Time   `bson:"timestamp" json:"timestamp"`
}

// DefaultSessionTitle is used until a diagnosis names the conversation.
const DefaultSessionTitle = "Cuộc tư vấn mới"

// ChatSession holds the full state of one conversation. The messages array is
// owned exclusively by the session; SuggestedProducts are weak references into
// the products collection and are replaced wholesale on every diagnosis.
type ChatSession struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID            string               `bson:"user_id" json:"user_id"`
	Title             string               `bson:"title" json:"title"`
	Disease           string               `bson:"disease,omitempty" json:"disease,omitempty"`
	Messages          []ChatMessage        `bson:"messages" json:"messages"`
	SuggestedProducts []primitive.ObjectID `bson:"suggested_products" json:"suggested_products"`
	CreatedAt         time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time            `bson:"updated_at" json:"updated_at"`
}

// Append adds a message to the transcript and bumps the session clock.
func (s *ChatSession) Append(role MessageRole, text, source string) {
	now := time.Now()
	s.Messages = append(s.Messages, ChatMessage{
		Role:      role,
		Text:      text,
		Source:    source,
		Timestamp: now,
	})
	s.UpdatedAt = now
}

// ChatRequest is the inbound payload for one turn. Required fields are
// checked in the controller so that missing input gets a conversational
// redirect instead of a binding error.
type ChatRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}

// TurnResult is the outcome of one processed turn.
type TurnResult struct {
	SessionID   string    `json:"session_id,omitempty"`
	Answer      string    `json:"answer"`
	Disease     string    `json:"disease,omitempty"`
	Products    []Product `json:"products,omitempty"`
	IsDiagnosis bool      `json:"is_diagnosis"`
}
