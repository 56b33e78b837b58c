package dto

import "advisory-api/internal/models"

// AnalyzeRequest is the payload for POST /advice/analyze. The user_id is
// validated by the service so the missing and malformed cases produce
// distinct messages.
type AnalyzeRequest struct {
	UserID string `json:"user_id"`
}

// AnalyzeResponse carries the computed summary and the advisory text
type AnalyzeResponse struct {
	Summary *models.PortfolioSummary `json:"summary"`
	Advice  string                   `json:"advice"`
}

// ChatTurn is one prior exchange in a conversation
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the payload for POST /chat
type ChatRequest struct {
	UserID  string     `json:"user_id" binding:"required"`
	Message string     `json:"message" binding:"required"`
	History []ChatTurn `json:"history"`
}

// ChatResponse carries the assistant reply
type ChatResponse struct {
	Reply string `json:"reply"`
}
