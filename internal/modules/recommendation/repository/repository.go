package repository

import (
	"context"
	"errors"

	"acadly.app/portal/internal/entity"
	"acadly.app/portal/internal/modules/points"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// Create inserts the recommendation and awards the author's points
	// in one transaction.
	Create(ctx context.Context, rec *entity.Recommendation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Recommendation, error)
	List(ctx context.Context) ([]entity.Recommendation, error)
	Recent(ctx context.Context, limit int) ([]entity.Recommendation, error)
	Count(ctx context.Context) (int64, error)
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)

	// CreateComment inserts the comment and awards the commenter's
	// points in one transaction.
	CreateComment(ctx context.Context, comment *entity.Comment) error
	CommentsByRecommendation(ctx context.Context, recID uuid.UUID) ([]entity.Comment, error)
	CommentCounts(ctx context.Context, recIDs []uuid.UUID) (map[uuid.UUID]int64, error)

	// ToggleUpvote flips the (user, recommendation) vote and keeps the
	// author's points balance consistent, all in one transaction. It
	// returns the new vote state and the recommendation (nil when it no
	// longer exists, in which case the points step is skipped).
	ToggleUpvote(ctx context.Context, userID, recID uuid.UUID) (bool, *entity.Recommendation, error)
	UpvoteCounts(ctx context.Context, recIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	UpvotedByUser(ctx context.Context, userID uuid.UUID, recIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type recommendationRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) Create(ctx context.Context, rec *entity.Recommendation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}
		return points.Apply(tx, rec.AuthorID, points.PointsCreateRecommendation, points.ActionCreateRecommendation, rec.ID)
	})
}

func (r *recommendationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Recommendation, error) {
	var rec entity.Recommendation
	if err := r.db.WithContext(ctx).Preload("Author").First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) List(ctx context.Context) ([]entity.Recommendation, error) {
	var recs []entity.Recommendation
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at desc").
		Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) Recent(ctx context.Context, limit int) ([]entity.Recommendation, error) {
	var recs []entity.Recommendation
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at desc").
		Limit(limit).
		Find(&recs).Error
	return recs, err
}

func (r *recommendationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Recommendation{}).Count(&count).Error
	return count, err
}

func (r *recommendationRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Recommendation{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

func (r *recommendationRepository) CreateComment(ctx context.Context, comment *entity.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return points.Apply(tx, comment.AuthorID, points.PointsCreateComment, points.ActionCreateComment, comment.ID)
	})
}

func (r *recommendationRepository) CommentsByRecommendation(ctx context.Context, recID uuid.UUID) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("recommendation_id = ?", recID).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *recommendationRepository) CommentCounts(ctx context.Context, recIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countsByRecommendation(ctx, &entity.Comment{}, recIDs)
}

func (r *recommendationRepository) ToggleUpvote(ctx context.Context, userID, recID uuid.UUID) (bool, *entity.Recommendation, error) {
	upvoted, rec, err := r.toggleOnce(ctx, userID, recID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a concurrent insert race: someone else's toggle landed
		// first. Treat the violation as "already voted" and rerun,
		// which now takes the delete path.
		return r.toggleOnce(ctx, userID, recID)
	}
	return upvoted, rec, err
}

func (r *recommendationRepository) toggleOnce(ctx context.Context, userID, recID uuid.UUID) (bool, *entity.Recommendation, error) {
	var upvoted bool
	var rec *entity.Recommendation

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The recommendation may be gone; the vote row is still
		// toggled but the points mutation is skipped.
		var recs []entity.Recommendation
		if err := tx.Where("id = ?", recID).Limit(1).Find(&recs).Error; err != nil {
			return err
		}
		if len(recs) > 0 {
			rec = &recs[0]
		}

		var existing []entity.Upvote
		if err := tx.Where("user_id = ? AND recommendation_id = ?", userID, recID).
			Limit(1).Find(&existing).Error; err != nil {
			return err
		}

		if len(existing) > 0 {
			res := tx.Delete(&existing[0])
			if res.Error != nil {
				return res.Error
			}
			upvoted = false
			// A concurrent toggle may have removed the row between the
			// lookup and the delete; only the delete that lands moves
			// the author's points.
			if rec != nil && res.RowsAffected > 0 {
				return points.Apply(tx, rec.AuthorID, -points.PointsUpvote, points.ActionUpvoteRetracted, recID)
			}
			return nil
		}

		vote := &entity.Upvote{UserID: userID, RecommendationID: recID}
		if err := tx.Create(vote).Error; err != nil {
			return err
		}
		upvoted = true
		if rec != nil {
			return points.Apply(tx, rec.AuthorID, points.PointsUpvote, points.ActionUpvoteReceived, recID)
		}
		return nil
	})

	return upvoted, rec, err
}

func (r *recommendationRepository) UpvoteCounts(ctx context.Context, recIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	return r.countsByRecommendation(ctx, &entity.Upvote{}, recIDs)
}

func (r *recommendationRepository) UpvotedByUser(ctx context.Context, userID uuid.UUID, recIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	upvoted := make(map[uuid.UUID]bool, len(recIDs))
	if len(recIDs) == 0 {
		return upvoted, nil
	}

	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.Upvote{}).
		Where("user_id = ? AND recommendation_id IN ?", userID, recIDs).
		Pluck("recommendation_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		upvoted[id] = true
	}
	return upvoted, nil
}

func (r *recommendationRepository) countsByRecommendation(ctx context.Context, model interface{}, recIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(recIDs))
	if len(recIDs) == 0 {
		return counts, nil
	}

	type result struct {
		RecommendationID uuid.UUID
		Count            int64
	}
	var results []result

	err := r.db.WithContext(ctx).
		Model(model).
		Select("recommendation_id, count(*) as count").
		Where("recommendation_id IN ?", recIDs).
		Group("recommendation_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for _, res := range results {
		counts[res.RecommendationID] = res.Count
	}
	return counts, nil
}
