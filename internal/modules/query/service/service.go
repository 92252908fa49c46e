package service

import (
	"context"
	"errors"
	"fmt"

	"acadly.app/portal/internal/entity"
	queryDto "acadly.app/portal/internal/modules/query/dto"
	queryRepo "acadly.app/portal/internal/modules/query/repository"
	"acadly.app/portal/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifService "acadly.app/portal/internal/modules/notification/service"
)

type QueryService interface {
	Create(ctx context.Context, authorID uuid.UUID, req queryDto.CreateQueryRequest) (*entity.Query, error)
	List(ctx context.Context) ([]queryDto.QueryResponse, error)
	Respond(ctx context.Context, responder *entity.Profile, id uuid.UUID, req queryDto.RespondQueryRequest) (*queryDto.QueryResponse, error)
}

type queryService struct {
	repo                queryRepo.QueryRepository
	notificationService notifService.NotificationService
}

func NewQueryService(repo queryRepo.QueryRepository, notificationService notifService.NotificationService) QueryService {
	return &queryService{
		repo:                repo,
		notificationService: notificationService,
	}
}

func (s *queryService) Create(ctx context.Context, authorID uuid.UUID, req queryDto.CreateQueryRequest) (*entity.Query, error) {
	query := &entity.Query{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      entity.QueryStatusOpen,
		AuthorID:    authorID,
	}
	if err := s.repo.Create(ctx, query); err != nil {
		return nil, err
	}
	return query, nil
}

func (s *queryService) List(ctx context.Context) ([]queryDto.QueryResponse, error) {
	queries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]queryDto.QueryResponse, 0, len(queries))
	for _, query := range queries {
		out = append(out, toResponse(&query))
	}
	return out, nil
}

func (s *queryService) Respond(ctx context.Context, responder *entity.Profile, id uuid.UUID, req queryDto.RespondQueryRequest) (*queryDto.QueryResponse, error) {
	query, err := s.repo.Respond(ctx, id, req.Status, req.Response, responder.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("query %w", apperror.ErrNotFound)
		}
		return nil, err
	}

	if query.AuthorID != responder.ID {
		verb := "updated"
		if query.Status == entity.QueryStatusResolved {
			verb = "resolved"
		}
		go s.notificationService.Notify(context.Background(), query.AuthorID,
			"Query Updated",
			fmt.Sprintf("Your query %q has been %s by %s", query.Title, verb, responder.FullName))
	}

	resp := toResponse(query)
	return &resp, nil
}

func toResponse(query *entity.Query) queryDto.QueryResponse {
	return queryDto.QueryResponse{
		ID:          query.ID,
		Title:       query.Title,
		Description: query.Description,
		Type:        query.Type,
		Status:      query.Status,
		Response:    query.Response,
		AuthorID:    query.AuthorID,
		AuthorName:  query.Author.FullName,
		ResponderID: query.ResponderID,
		CreatedAt:   query.CreatedAt,
	}
}
