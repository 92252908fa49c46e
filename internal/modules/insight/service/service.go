package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"acadly.app/portal/internal/entity"
	insightDto "acadly.app/portal/internal/modules/insight/dto"
	"acadly.app/portal/internal/modules/insight/provider"
	profileRepo "acadly.app/portal/internal/modules/profile/repository"
	queryRepo "acadly.app/portal/internal/modules/query/repository"
	recRepo "acadly.app/portal/internal/modules/recommendation/repository"
)

const (
	recentSampleSize = 10
	topFacultySize   = 5
)

type InsightService interface {
	Insights(ctx context.Context) (*insightDto.InsightResponse, error)
}

type insightService struct {
	recommendations recRepo.Repository
	queries         queryRepo.QueryRepository
	profiles        profileRepo.ProfileRepository
	llm             provider.LLMProvider
}

// NewInsightService builds the insight service. llm may be nil; the
// deterministic fallback summary is served in that case.
func NewInsightService(
	recommendations recRepo.Repository,
	queries queryRepo.QueryRepository,
	profiles profileRepo.ProfileRepository,
	llm provider.LLMProvider,
) InsightService {
	return &insightService{
		recommendations: recommendations,
		queries:         queries,
		profiles:        profiles,
		llm:             llm,
	}
}

type engagementSnapshot struct {
	facultyCount        int64
	recommendationCount int64
	queryCount          int64
	openQueries         int64
	resolvedQueries     int64
	topFaculty          []entity.Profile
	recentRecs          []entity.Recommendation
	recentQueries       []entity.Query
}

func (s *insightService) Insights(ctx context.Context) (*insightDto.InsightResponse, error) {
	snapshot, err := s.gather(ctx)
	if err != nil {
		return nil, err
	}

	if s.llm == nil {
		return &insightDto.InsightResponse{
			Available: false,
			Fallback:  fallbackSummary(snapshot),
		}, nil
	}

	var report insightDto.InsightReport
	if err := s.llm.GenerateStructured(ctx, buildPrompt(snapshot), &report); err != nil {
		log.Printf("insight generation failed, serving fallback: %v", err)
		return &insightDto.InsightResponse{
			Available: false,
			Fallback:  fallbackSummary(snapshot),
		}, nil
	}

	return &insightDto.InsightResponse{
		Available: true,
		Report:    &report,
	}, nil
}

func (s *insightService) gather(ctx context.Context) (*engagementSnapshot, error) {
	snapshot := &engagementSnapshot{}

	var err error
	if snapshot.facultyCount, err = s.profiles.Count(ctx); err != nil {
		return nil, err
	}
	if snapshot.recommendationCount, err = s.recommendations.Count(ctx); err != nil {
		return nil, err
	}
	if snapshot.queryCount, err = s.queries.Count(ctx); err != nil {
		return nil, err
	}
	if snapshot.openQueries, err = s.queries.CountByStatus(ctx, entity.QueryStatusOpen); err != nil {
		return nil, err
	}
	if snapshot.resolvedQueries, err = s.queries.CountByStatus(ctx, entity.QueryStatusResolved); err != nil {
		return nil, err
	}
	if snapshot.topFaculty, err = s.profiles.TopByPoints(ctx, topFacultySize); err != nil {
		return nil, err
	}
	if snapshot.recentRecs, err = s.recommendations.Recent(ctx, recentSampleSize); err != nil {
		return nil, err
	}
	if snapshot.recentQueries, err = s.queries.Recent(ctx, recentSampleSize); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func buildPrompt(s *engagementSnapshot) string {
	var b strings.Builder

	b.WriteString("You are an analyst for a faculty engagement portal. ")
	b.WriteString("Produce a JSON object with keys summary (string), highlights, concerns and recommendations (arrays of strings) ")
	b.WriteString("describing the state of faculty engagement based on the data below.\n\n")

	fmt.Fprintf(&b, "Faculty members: %d\n", s.facultyCount)
	fmt.Fprintf(&b, "Recommendations: %d\n", s.recommendationCount)
	fmt.Fprintf(&b, "Queries: %d (%d open, %d resolved)\n\n", s.queryCount, s.openQueries, s.resolvedQueries)

	b.WriteString("Top contributors by points:\n")
	for _, p := range s.topFaculty {
		fmt.Fprintf(&b, "- %s (%s): %d points\n", p.FullName, p.Role, p.Points)
	}

	b.WriteString("\nRecent recommendations:\n")
	for _, r := range s.recentRecs {
		fmt.Fprintf(&b, "- [%s] %s\n", r.Category, r.Title)
	}

	b.WriteString("\nRecent queries:\n")
	for _, q := range s.recentQueries {
		fmt.Fprintf(&b, "- [%s/%s] %s\n", q.Type, q.Status, q.Title)
	}

	return b.String()
}

func fallbackSummary(s *engagementSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d faculty members have shared %d recommendations and raised %d queries (%d open, %d resolved).",
		s.facultyCount, s.recommendationCount, s.queryCount, s.openQueries, s.resolvedQueries)

	if len(s.topFaculty) > 0 {
		top := s.topFaculty[0]
		fmt.Fprintf(&b, " %s leads the leaderboard with %d points.", top.FullName, top.Points)
	}

	return b.String()
}
