package dto

import (
	"time"

	"acadly.app/portal/internal/entity"
	lbDto "acadly.app/portal/internal/modules/leaderboard/dto"
	"github.com/google/uuid"
)

const (
	ActivityRecommendation = "recommendation"
	ActivityQuery          = "query"
)

type ActivityItem struct {
	Type       string    `json:"type"`
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type DashboardStats struct {
	Points              int                      `json:"points"`
	RecommendationCount int64                    `json:"recommendation_count"`
	QueryCount          int64                    `json:"query_count"`
	RecentActivity      []ActivityItem           `json:"recent_activity"`
	Leaderboard         []lbDto.LeaderboardEntry `json:"leaderboard"`
	UpcomingEvents      []entity.FacultyEvent    `json:"upcoming_events"`
}
