package repository

import (
	"context"

	"acadly.app/portal/internal/entity"
	"acadly.app/portal/internal/modules/points"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QueryRepository interface {
	// Create inserts the query and awards the author's points in one
	// transaction.
	Create(ctx context.Context, query *entity.Query) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Query, error)
	List(ctx context.Context) ([]entity.Query, error)
	Recent(ctx context.Context, limit int) ([]entity.Query, error)
	Count(ctx context.Context) (int64, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// Respond records status, response text and responder in one update.
	Respond(ctx context.Context, id uuid.UUID, status, responseText string, responderID uuid.UUID) (*entity.Query, error)
}

type queryRepository struct {
	db *gorm.DB
}

func NewQueryRepository(db *gorm.DB) QueryRepository {
	return &queryRepository{db: db}
}

func (r *queryRepository) Create(ctx context.Context, query *entity.Query) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(query).Error; err != nil {
			return err
		}
		return points.Apply(tx, query.AuthorID, points.PointsCreateQuery, points.ActionCreateQuery, query.ID)
	})
}

func (r *queryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Query, error) {
	var query entity.Query
	if err := r.db.WithContext(ctx).Preload("Author").First(&query, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &query, nil
}

func (r *queryRepository) List(ctx context.Context) ([]entity.Query, error) {
	var queries []entity.Query
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at desc").
		Find(&queries).Error
	return queries, err
}

func (r *queryRepository) Recent(ctx context.Context, limit int) ([]entity.Query, error) {
	var queries []entity.Query
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at desc").
		Limit(limit).
		Find(&queries).Error
	return queries, err
}

func (r *queryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Query{}).Count(&count).Error
	return count, err
}

func (r *queryRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Query{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *queryRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Query{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *queryRepository) Respond(ctx context.Context, id uuid.UUID, status, responseText string, responderID uuid.UUID) (*entity.Query, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Query{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"response":     responseText,
			"responder_id": responderID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return r.FindByID(ctx, id)
}
