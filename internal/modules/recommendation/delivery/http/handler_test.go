package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"acadly.app/portal/internal/entity"
	recDto "acadly.app/portal/internal/modules/recommendation/dto"
	"acadly.app/portal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	createCalls int
}

func (f *fakeService) Create(_ context.Context, authorID uuid.UUID, req recDto.CreateRecommendationRequest) (*entity.Recommendation, error) {
	f.createCalls++
	return &entity.Recommendation{ID: uuid.New(), Title: req.Title, AuthorID: authorID}, nil
}

func (f *fakeService) List(_ context.Context, _ uuid.UUID) ([]recDto.RecommendationResponse, error) {
	return nil, nil
}

func (f *fakeService) Get(_ context.Context, _, _ uuid.UUID) (*recDto.RecommendationDetailResponse, error) {
	return nil, nil
}

func (f *fakeService) AddComment(_ context.Context, _ *entity.Profile, _ uuid.UUID, _ recDto.CreateCommentRequest) (*entity.Comment, error) {
	return nil, nil
}

func (f *fakeService) ToggleUpvote(_ context.Context, _ *entity.Profile, _ uuid.UUID) (*recDto.ToggleUpvoteResponse, error) {
	return nil, nil
}

func newTestRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	// Stand-in for the auth middleware.
	router.Use(func(c *gin.Context) {
		c.Set(response.ProfileKey, &entity.Profile{ID: uuid.New(), FullName: "Dr. Mehta"})
	})

	h := NewRecommendationHandler(svc)
	router.POST("/api/recommendations", h.Create)
	return router
}

func TestCreate_MissingDescription(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"title": "Coffee near campus", "category": "food"}`
	req := httptest.NewRequest("POST", "/api/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Description is required", resp["error"])
	assert.Zero(t, svc.createCalls, "no recommendation may be created on a validation failure")
}

func TestCreate_Valid(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"title": "Coffee near campus", "category": "food", "description": "Great espresso", "rating": 4}`
	req := httptest.NewRequest("POST", "/api/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, svc.createCalls)
}

func TestCreate_RatingOutOfRange(t *testing.T) {
	svc := &fakeService{}
	router := newTestRouter(svc)

	body := `{"title": "Coffee", "category": "food", "description": "x", "rating": 9}`
	req := httptest.NewRequest("POST", "/api/recommendations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Rating must be at most 5", resp["error"])
	assert.Zero(t, svc.createCalls)
}
