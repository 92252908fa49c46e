package service

import (
	"context"
	"testing"

	"acadly.app/portal/internal/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProfiles struct {
	top       []entity.Profile
	lastLimit int
}

func (f *fakeProfiles) Create(_ context.Context, _ *entity.Profile) error { return nil }

func (f *fakeProfiles) FindByID(_ context.Context, _ uuid.UUID) (*entity.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfiles) FindByEmail(_ context.Context, _ string) (*entity.Profile, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProfiles) TopByPoints(_ context.Context, limit int) ([]entity.Profile, error) {
	f.lastLimit = limit
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeProfiles) IDsExcept(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeProfiles) Count(_ context.Context) (int64, error) { return 0, nil }

func TestTop_AssignsRanks(t *testing.T) {
	profiles := &fakeProfiles{top: []entity.Profile{
		{ID: uuid.New(), FullName: "Dr. Asha Verma", Role: entity.RoleFaculty, Points: 42},
		{ID: uuid.New(), FullName: "Prof. Iyer", Role: entity.RoleHOD, Points: 30},
		{ID: uuid.New(), FullName: "Dr. Rao", Role: entity.RoleFaculty, Points: 12},
	}}
	svc := NewLeaderboardService(profiles)

	entries, err := svc.Top(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 50, profiles.lastLimit)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Rank)
	}
	assert.Equal(t, "Dr. Asha Verma", entries[0].FullName)
	assert.Equal(t, 42, entries[0].Points)
}

func TestTop_Empty(t *testing.T) {
	svc := NewLeaderboardService(&fakeProfiles{})

	entries, err := svc.Top(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
