package response_models

import (
	"time"

	"wayfarer/internal/models/trip_models"
)

type SessionResponse struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Welcome   string    `json:"welcome"`
}

type HistoryResponse struct {
	SessionID string                         `json:"session_id"`
	Turns     []trip_models.ConversationTurn `json:"turns"`
}

type CancelResponse struct {
	Cancelled bool `json:"cancelled"`
}
