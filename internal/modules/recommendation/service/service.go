package service

import (
	"context"
	"errors"
	"fmt"

	"acadly.app/portal/internal/entity"
	recDto "acadly.app/portal/internal/modules/recommendation/dto"
	recRepo "acadly.app/portal/internal/modules/recommendation/repository"
	"acadly.app/portal/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifService "acadly.app/portal/internal/modules/notification/service"
)

type Service interface {
	Create(ctx context.Context, authorID uuid.UUID, req recDto.CreateRecommendationRequest) (*entity.Recommendation, error)
	List(ctx context.Context, viewerID uuid.UUID) ([]recDto.RecommendationResponse, error)
	Get(ctx context.Context, viewerID, id uuid.UUID) (*recDto.RecommendationDetailResponse, error)
	AddComment(ctx context.Context, author *entity.Profile, recID uuid.UUID, req recDto.CreateCommentRequest) (*entity.Comment, error)
	ToggleUpvote(ctx context.Context, voter *entity.Profile, recID uuid.UUID) (*recDto.ToggleUpvoteResponse, error)
}

type recommendationService struct {
	repo                recRepo.Repository
	notificationService notifService.NotificationService
}

func NewService(repo recRepo.Repository, notificationService notifService.NotificationService) Service {
	return &recommendationService{
		repo:                repo,
		notificationService: notificationService,
	}
}

func (s *recommendationService) Create(ctx context.Context, authorID uuid.UUID, req recDto.CreateRecommendationRequest) (*entity.Recommendation, error) {
	rec := &entity.Recommendation{
		Title:       req.Title,
		Category:    req.Category,
		Rating:      req.Rating,
		Location:    req.Location,
		Description: req.Description,
		AuthorID:    authorID,
	}
	if rec.Rating == 0 {
		rec.Rating = 5
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *recommendationService) List(ctx context.Context, viewerID uuid.UUID) ([]recDto.RecommendationResponse, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}

	commentCounts, err := s.repo.CommentCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	upvoteCounts, err := s.repo.UpvoteCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	upvotedByViewer, err := s.repo.UpvotedByUser(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]recDto.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toResponse(&rec, commentCounts[rec.ID], upvoteCounts[rec.ID], upvotedByViewer[rec.ID]))
	}
	return out, nil
}

func (s *recommendationService) Get(ctx context.Context, viewerID, id uuid.UUID) (*recDto.RecommendationDetailResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recommendation %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	comments, err := s.repo.CommentsByRecommendation(ctx, id)
	if err != nil {
		return nil, err
	}

	upvoteCounts, err := s.repo.UpvoteCounts(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	upvotedByViewer, err := s.repo.UpvotedByUser(ctx, viewerID, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}

	detail := &recDto.RecommendationDetailResponse{
		RecommendationResponse: toResponse(rec, int64(len(comments)), upvoteCounts[id], upvotedByViewer[id]),
		Comments:               make([]recDto.CommentResponse, 0, len(comments)),
	}
	for _, comment := range comments {
		detail.Comments = append(detail.Comments, recDto.CommentResponse{
			ID:         comment.ID,
			Content:    comment.Content,
			AuthorID:   comment.AuthorID,
			AuthorName: comment.Author.FullName,
			CreatedAt:  comment.CreatedAt,
		})
	}
	return detail, nil
}

func (s *recommendationService) AddComment(ctx context.Context, author *entity.Profile, recID uuid.UUID, req recDto.CreateCommentRequest) (*entity.Comment, error) {
	rec, err := s.repo.FindByID(ctx, recID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("recommendation %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	comment := &entity.Comment{
		Content:          req.Content,
		AuthorID:         author.ID,
		RecommendationID: recID,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if rec.AuthorID != author.ID {
		go s.notificationService.Notify(context.Background(), rec.AuthorID,
			"New Comment",
			fmt.Sprintf("%s commented on your recommendation %q", author.FullName, rec.Title))
	}

	return comment, nil
}

func (s *recommendationService) ToggleUpvote(ctx context.Context, voter *entity.Profile, recID uuid.UUID) (*recDto.ToggleUpvoteResponse, error) {
	upvoted, rec, err := s.repo.ToggleUpvote(ctx, voter.ID, recID)
	if err != nil {
		return nil, err
	}

	// Self-upvotes still earn the point but never notify.
	if upvoted && rec != nil && rec.AuthorID != voter.ID {
		go s.notificationService.Notify(context.Background(), rec.AuthorID,
			"New Upvote",
			fmt.Sprintf("%s upvoted your recommendation %q", voter.FullName, rec.Title))
	}

	return &recDto.ToggleUpvoteResponse{Upvoted: upvoted}, nil
}

func toResponse(rec *entity.Recommendation, commentCount, upvoteCount int64, hasUpvoted bool) recDto.RecommendationResponse {
	return recDto.RecommendationResponse{
		ID:           rec.ID,
		Title:        rec.Title,
		Category:     rec.Category,
		Rating:       rec.Rating,
		Location:     rec.Location,
		Description:  rec.Description,
		AuthorID:     rec.AuthorID,
		AuthorName:   rec.Author.FullName,
		CreatedAt:    rec.CreatedAt,
		CommentCount: commentCount,
		UpvoteCount:  upvoteCount,
		HasUpvoted:   hasUpvoted,
	}
}
