package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"acadly.app/portal/internal/entity"
	"acadly.app/portal/pkg/response"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	profile    *entity.Profile
	err        error
	lastUserID uuid.UUID
}

func (f *fakeProfileRepo) Create(_ context.Context, _ *entity.Profile) error { return nil }

func (f *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Profile, error) {
	f.lastUserID = id
	return f.profile, f.err
}

func (f *fakeProfileRepo) FindByEmail(_ context.Context, _ string) (*entity.Profile, error) {
	return f.profile, f.err
}

func (f *fakeProfileRepo) TopByPoints(_ context.Context, _ int) ([]entity.Profile, error) {
	return nil, nil
}

func (f *fakeProfileRepo) IDsExcept(_ context.Context, _ uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeProfileRepo) Count(_ context.Context) (int64, error) { return 0, nil }

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("test-session", store))
	return router
}

func setSessionCookie(t *testing.T, router *gin.Engine, values map[string]interface{}) *http.Cookie {
	setupPath := "/setup-session-" + t.Name()
	router.GET(setupPath, func(c *gin.Context) {
		session := sessions.Default(c)
		for k, v := range values {
			session.Set(k, v)
		}
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", setupPath, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies[0]
}

func TestRequireAuth_NoSession(t *testing.T) {
	router := newTestRouter()
	mw := NewAuthMiddleware(&fakeProfileRepo{})

	router.GET("/resource", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest("GET", "/resource", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_LoadsProfileFromDB(t *testing.T) {
	router := newTestRouter()

	profile := &entity.Profile{
		ID:       uuid.New(),
		FullName: "Dr. Asha Verma",
		Role:     entity.RoleFaculty,
	}
	repo := &fakeProfileRepo{profile: profile}
	mw := NewAuthMiddleware(repo)

	router.GET("/resource", mw.RequireAuth(), func(c *gin.Context) {
		got, err := response.GetProfile(c)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, got.ID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	cookie := setSessionCookie(t, router, map[string]interface{}{
		UserIDKey: profile.ID.String(),
	})

	req := httptest.NewRequest("GET", "/resource", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, profile.ID, repo.lastUserID)
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	router := newTestRouter()

	repo := &fakeProfileRepo{err: errors.New("record not found")}
	mw := NewAuthMiddleware(repo)

	router.GET("/resource", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	cookie := setSessionCookie(t, router, map[string]interface{}{
		UserIDKey: uuid.NewString(),
	})

	req := httptest.NewRequest("GET", "/resource", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		allowed  []string
		wantCode int
	}{
		{"faculty blocked from responder route", entity.RoleFaculty, entity.ResponderRoles, http.StatusForbidden},
		{"hod allowed on responder route", entity.RoleHOD, entity.ResponderRoles, http.StatusOK},
		{"dean allowed on insights", entity.RoleDean, []string{entity.RoleDean, entity.RoleSuperadmin}, http.StatusOK},
		{"hod blocked from superadmin route", entity.RoleHOD, []string{entity.RoleSuperadmin}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter()

			profile := &entity.Profile{ID: uuid.New(), Role: tt.role}
			mw := NewAuthMiddleware(&fakeProfileRepo{profile: profile})

			router.GET("/resource", mw.RequireAuth(), mw.RequireRole(tt.allowed...), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			cookie := setSessionCookie(t, router, map[string]interface{}{
				UserIDKey: profile.ID.String(),
			})

			req := httptest.NewRequest("GET", "/resource", nil)
			req.AddCookie(cookie)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
