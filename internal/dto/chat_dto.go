package dto

import "time"

// DefaultSessionId is used when the caller omits session_id
const DefaultSessionId = "default"

type ChatRequest struct {
	// Question may be empty; the pipeline answers it with the refusal phrase
	// rather than rejecting the request.
	Question  string `json:"question" query:"question" validate:"max=4000"`
	SessionId string `json:"session_id" query:"session_id" validate:"max=255"`
}

type ChatResponse struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	SourcePages []int  `json:"source_pages"`
	SessionId   string `json:"session_id"`
}

// ChatErrorResponse mirrors the upstream contract: failures are reported in
// the body with a success status code, never as a transport-level error.
type ChatErrorResponse struct {
	Error    string `json:"error"`
	Question string `json:"question,omitempty"`
}

type ReadinessResponse struct {
	Message       string `json:"message"`
	Status        string `json:"status"` // "ready" | "not ready"
	Docs          string `json:"docs"`
	DocumentCount int64  `json:"document_count"`
}

type ChatHistoryEntry struct {
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	SourcePages []int     `json:"source_pages"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	SessionId string             `json:"session_id"`
	Turns     []ChatHistoryEntry `json:"turns"`
}
