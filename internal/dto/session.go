package dto

type CreateSessionRequest struct {
	Role string `json:"role"`
}

type SessionResponse struct {
	SessionID    string        `json:"session_id"`
	Role         string        `json:"role"`
	AccessToken  string        `json:"access_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	Welcome      *ChatResponse `json:"welcome"`
	QuickReplies []string      `json:"quick_replies"`
}
