package dto

type MatchRequest struct {
	Query string `json:"query"`
}

type MatchResponse struct {
	Matched  bool   `json:"matched"`
	Category string `json:"category,omitempty"`
	Question string `json:"question,omitempty"`
	Answer   string `json:"answer,omitempty"`
}

type CategoryResponse struct {
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

type KnowledgeResponse struct {
	Role       string             `json:"role"`
	Categories []CategoryResponse `json:"categories"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}
