package points

import (
	"acadly.app/portal/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateRecommendation = "create_recommendation"
	ActionCreateComment        = "create_comment"
	ActionCreateQuery          = "create_query"
	ActionUpvoteReceived       = "upvote_received"
	ActionUpvoteRetracted      = "upvote_retracted"
)

const (
	PointsCreateRecommendation = 5
	PointsCreateComment        = 3
	PointsCreateQuery          = 3
	PointsUpvote               = 1
)

// Apply adjusts a profile's points balance by delta and records the
// change in the point log. It must be called inside the transaction
// that writes the triggering content row, so content and points move
// together. The balance is floored at zero in SQL.
func Apply(tx *gorm.DB, userID uuid.UUID, delta int, action string, referenceID uuid.UUID) error {
	if err := tx.Model(&entity.Profile{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("GREATEST(points + ?, 0)", delta)).Error; err != nil {
		return err
	}

	return tx.Create(&entity.PointLog{
		UserID:      userID,
		Action:      action,
		Points:      delta,
		ReferenceID: referenceID,
	}).Error
}
