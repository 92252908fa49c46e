package points

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type capturedStatement struct {
	sql  string
	vars []interface{}
}

// newRecordingDB opens a dry-run session that builds SQL without a
// database and records every update and create statement Apply emits.
func newRecordingDB(t *testing.T) (*gorm.DB, *[]capturedStatement) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	captured := &[]capturedStatement{}
	record := func(tx *gorm.DB) {
		*captured = append(*captured, capturedStatement{
			sql:  tx.Statement.SQL.String(),
			vars: append([]interface{}{}, tx.Statement.Vars...),
		})
	}
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("record_sql", record))
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("record_sql", record))

	return db, captured
}

func TestApply_RoutesDeltaToUser(t *testing.T) {
	db, captured := newRecordingDB(t)
	userID := uuid.New()
	refID := uuid.New()

	err := Apply(db, userID, PointsCreateRecommendation, ActionCreateRecommendation, refID)
	require.NoError(t, err)

	require.Len(t, *captured, 2)
	update := (*captured)[0]

	assert.Contains(t, update.sql, "UPDATE")
	assert.Contains(t, update.sql, "profiles")
	assert.Contains(t, update.vars, PointsCreateRecommendation)
	assert.Contains(t, update.vars, userID)
}

func TestApply_FloorsBalanceAtZeroInSQL(t *testing.T) {
	db, captured := newRecordingDB(t)

	err := Apply(db, uuid.New(), -PointsUpvote, ActionUpvoteRetracted, uuid.New())
	require.NoError(t, err)

	require.Len(t, *captured, 2)
	update := (*captured)[0]

	// The floor lives in the database expression, not in Go, so a
	// negative delta can never push the stored balance below zero.
	assert.Contains(t, update.sql, "GREATEST(points + ?, 0)")
	assert.Contains(t, update.vars, -PointsUpvote)
}

func TestApply_AppendsLedgerRowInSameSession(t *testing.T) {
	db, captured := newRecordingDB(t)
	userID := uuid.New()
	refID := uuid.New()

	err := Apply(db, userID, PointsCreateComment, ActionCreateComment, refID)
	require.NoError(t, err)

	require.Len(t, *captured, 2)
	insert := (*captured)[1]

	assert.Contains(t, insert.sql, "INSERT")
	assert.Contains(t, insert.sql, "point_logs")
	assert.Contains(t, insert.vars, userID)
	assert.Contains(t, insert.vars, ActionCreateComment)
	assert.Contains(t, insert.vars, PointsCreateComment)
	assert.Contains(t, insert.vars, refID)
}
