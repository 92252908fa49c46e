package service

import (
	"context"

	lbDto "acadly.app/portal/internal/modules/leaderboard/dto"
	profileRepo "acadly.app/portal/internal/modules/profile/repository"
)

type LeaderboardService interface {
	Top(ctx context.Context, limit int) ([]lbDto.LeaderboardEntry, error)
}

type leaderboardService struct {
	profiles profileRepo.ProfileRepository
}

func NewLeaderboardService(profiles profileRepo.ProfileRepository) LeaderboardService {
	return &leaderboardService{profiles: profiles}
}

func (s *leaderboardService) Top(ctx context.Context, limit int) ([]lbDto.LeaderboardEntry, error) {
	profiles, err := s.profiles.TopByPoints(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]lbDto.LeaderboardEntry, 0, len(profiles))
	for i, profile := range profiles {
		entries = append(entries, lbDto.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   profile.ID,
			FullName: profile.FullName,
			Role:     profile.Role,
			Points:   profile.Points,
		})
	}
	return entries, nil
}
