package service

import (
	"testing"
	"time"

	"acadly.app/portal/internal/entity"
	dashDto "acadly.app/portal/internal/modules/dashboard/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRecent_OrdersAcrossStreams(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	recs := []entity.Recommendation{
		{Title: "rec newest", CreatedAt: base.Add(4 * time.Hour)},
		{Title: "rec oldest", CreatedAt: base},
	}
	queries := []entity.Query{
		{Title: "query middle", CreatedAt: base.Add(2 * time.Hour)},
		{Title: "query newer", CreatedAt: base.Add(3 * time.Hour)},
	}

	items := mergeRecent(recs, queries, 5)
	require.Len(t, items, 4)

	assert.Equal(t, "rec newest", items[0].Title)
	assert.Equal(t, "query newer", items[1].Title)
	assert.Equal(t, "query middle", items[2].Title)
	assert.Equal(t, "rec oldest", items[3].Title)

	assert.Equal(t, dashDto.ActivityRecommendation, items[0].Type)
	assert.Equal(t, dashDto.ActivityQuery, items[1].Type)
}

func TestMergeRecent_TrimsToLimit(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	var recs []entity.Recommendation
	var queries []entity.Query
	for i := 0; i < 5; i++ {
		recs = append(recs, entity.Recommendation{CreatedAt: base.Add(time.Duration(i) * time.Minute)})
		queries = append(queries, entity.Query{CreatedAt: base.Add(time.Duration(i) * time.Second)})
	}

	items := mergeRecent(recs, queries, 5)
	assert.Len(t, items, 5)
}

func TestMergeRecent_Empty(t *testing.T) {
	items := mergeRecent(nil, nil, 5)
	assert.Empty(t, items)
}
