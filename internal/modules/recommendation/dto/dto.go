package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRecommendationRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Category    string  `json:"category" binding:"required,max=100"`
	Rating      int     `json:"rating" binding:"omitempty,min=1,max=5"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
	Description string  `json:"description" binding:"required"`
}

type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type RecommendationResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Rating       int       `json:"rating"`
	Location     *string   `json:"location,omitempty"`
	Description  string    `json:"description"`
	AuthorID     uuid.UUID `json:"author_id"`
	AuthorName   string    `json:"author_name"`
	CreatedAt    time.Time `json:"created_at"`
	CommentCount int64     `json:"comment_count"`
	UpvoteCount  int64     `json:"upvote_count"`
	HasUpvoted   bool      `json:"has_upvoted"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type RecommendationDetailResponse struct {
	RecommendationResponse
	Comments []CommentResponse `json:"comments"`
}

type ToggleUpvoteResponse struct {
	Upvoted bool `json:"upvoted"`
}
