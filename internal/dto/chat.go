package dto

import "time"

type ReplyKind string

const (
	ReplyKindWelcome  ReplyKind = "welcome"
	ReplyKindGreeting ReplyKind = "greeting"
	ReplyKindMeta     ReplyKind = "meta"
	ReplyKindAnswer   ReplyKind = "answer"
	ReplyKindClarify  ReplyKind = "clarify"
	ReplyKindFallback ReplyKind = "fallback"
)

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Kind            ReplyKind `json:"kind"`
	Text            string    `json:"text"`
	RelatedQuestion string    `json:"related_question,omitempty"`
	SuggestedTopic  string    `json:"suggested_topic,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}
