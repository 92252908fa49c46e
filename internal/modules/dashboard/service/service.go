package service

import (
	"context"
	"sort"
	"time"

	"acadly.app/portal/internal/entity"
	calRepo "acadly.app/portal/internal/modules/calendar/repository"
	dashDto "acadly.app/portal/internal/modules/dashboard/dto"
	lbService "acadly.app/portal/internal/modules/leaderboard/service"
	queryRepo "acadly.app/portal/internal/modules/query/repository"
	recRepo "acadly.app/portal/internal/modules/recommendation/repository"
)

const (
	recentActivityLimit = 5
	leaderboardWidget   = 5
	upcomingEventsLimit = 5
)

type DashboardService interface {
	Stats(ctx context.Context, profile *entity.Profile) (*dashDto.DashboardStats, error)
}

type dashboardService struct {
	recommendations recRepo.Repository
	queries         queryRepo.QueryRepository
	calendars       calRepo.CalendarRepository
	leaderboard     lbService.LeaderboardService
	now             func() time.Time
}

func NewDashboardService(
	recommendations recRepo.Repository,
	queries queryRepo.QueryRepository,
	calendars calRepo.CalendarRepository,
	leaderboard lbService.LeaderboardService,
) DashboardService {
	return &dashboardService{
		recommendations: recommendations,
		queries:         queries,
		calendars:       calendars,
		leaderboard:     leaderboard,
		now:             time.Now,
	}
}

func (s *dashboardService) Stats(ctx context.Context, profile *entity.Profile) (*dashDto.DashboardStats, error) {
	recCount, err := s.recommendations.CountByAuthor(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	queryCount, err := s.queries.CountByAuthor(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	recentRecs, err := s.recommendations.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}
	recentQueries, err := s.queries.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	entries, err := s.leaderboard.Top(ctx, leaderboardWidget)
	if err != nil {
		return nil, err
	}

	today := s.now().Truncate(24 * time.Hour)
	upcoming, err := s.calendars.UpcomingEventsByFaculty(ctx, profile.ID, today, upcomingEventsLimit)
	if err != nil {
		return nil, err
	}

	return &dashDto.DashboardStats{
		Points:              profile.Points,
		RecommendationCount: recCount,
		QueryCount:          queryCount,
		RecentActivity:      mergeRecent(recentRecs, recentQueries, recentActivityLimit),
		Leaderboard:         entries,
		UpcomingEvents:      upcoming,
	}, nil
}

// mergeRecent interleaves the two activity streams newest first and
// trims to limit.
func mergeRecent(recs []entity.Recommendation, queries []entity.Query, limit int) []dashDto.ActivityItem {
	items := make([]dashDto.ActivityItem, 0, len(recs)+len(queries))
	for _, rec := range recs {
		items = append(items, dashDto.ActivityItem{
			Type:       dashDto.ActivityRecommendation,
			ID:         rec.ID,
			Title:      rec.Title,
			AuthorName: rec.Author.FullName,
			CreatedAt:  rec.CreatedAt,
		})
	}
	for _, query := range queries {
		items = append(items, dashDto.ActivityItem{
			Type:       dashDto.ActivityQuery,
			ID:         query.ID,
			Title:      query.Title,
			AuthorName: query.Author.FullName,
			CreatedAt:  query.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
