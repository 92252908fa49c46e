package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateQueryRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
	Type        string `json:"type" binding:"required,max=100"`
}

type RespondQueryRequest struct {
	Response string `json:"response" binding:"required"`
	Status   string `json:"status" binding:"required,oneof=open in_progress resolved"`
}

type QueryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Response    *string    `json:"response,omitempty"`
	AuthorID    uuid.UUID  `json:"author_id"`
	AuthorName  string     `json:"author_name"`
	ResponderID *uuid.UUID `json:"responder_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
