package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storely/store-rating-service/internal/auth"
	"github.com/storely/store-rating-service/internal/models"
	"github.com/storely/store-rating-service/internal/repositories"
)

// stubUserRepo backs the middleware tests with a fixed user set.
type stubUserRepo struct {
	users map[uint]*models.User
}

func (s *stubUserRepo) Create(context.Context, *models.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUserRepo) GetByIDWithDetails(ctx context.Context, id uint) (*models.User, error) {
	return s.GetByID(ctx, id)
}

func (s *stubUserRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(context.Context, repositories.UserFilters) ([]*models.User, int64, error) {
	return nil, 0, nil
}

func (s *stubUserRepo) UpdatePassword(context.Context, uint, string) error { return nil }

func newTestRouter(t *testing.T, tokens *auth.TokenManager, repo repositories.UserRepository, roles ...models.UserRole) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	am := NewAuthMiddleware(tokens, repo)
	router := gin.New()
	group := router.Group("/protected", am.RequireAuth())
	if len(roles) > 0 {
		group.Use(am.RequireRoles(roles...))
	}
	group.GET("", func(c *gin.Context) {
		id, _ := CurrentUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Email: "user@example.com", Role: models.RoleUser},
	}}

	t.Run("missing header", func(t *testing.T) {
		router := newTestRouter(t, tokens, repo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
		var body ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid error body: %v", err)
		}
		if body.Success {
			t.Error("success should be false")
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		router := newTestRouter(t, tokens, repo)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("valid token for existing user", func(t *testing.T) {
		router := newTestRouter(t, tokens, repo)
		token, err := tokens.Issue(7, "user@example.com", models.RoleUser)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200: %s", w.Code, w.Body.String())
		}
	})

	t.Run("valid token for deleted user", func(t *testing.T) {
		router := newTestRouter(t, tokens, repo)
		token, err := tokens.Issue(404, "gone@example.com", models.RoleUser)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})
}

func TestRequireRoles(t *testing.T) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[uint]*models.User{
		1: {ID: 1, Email: "admin@example.com", Role: models.RoleAdmin},
		2: {ID: 2, Email: "user@example.com", Role: models.RoleUser},
	}}

	request := func(t *testing.T, router *gin.Engine, userID uint, email string, role models.UserRole) *httptest.ResponseRecorder {
		t.Helper()
		token, err := tokens.Issue(userID, email, role)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("role in the allowed set passes", func(t *testing.T) {
		router := newTestRouter(t, tokens, repo, models.RoleUser, models.RoleOwner)
		if w := request(t, router, 2, "user@example.com", models.RoleUser); w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("role outside the set gets 403", func(t *testing.T) {
		router := newTestRouter(t, tokens, repo, models.RoleUser, models.RoleOwner)
		// ADMIN is not in the set; membership is exact.
		if w := request(t, router, 1, "admin@example.com", models.RoleAdmin); w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})

	t.Run("admin-only route rejects USER", func(t *testing.T) {
		router := newTestRouter(t, tokens, repo, models.RoleAdmin)
		if w := request(t, router, 2, "user@example.com", models.RoleUser); w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	repo := &stubUserRepo{users: map[uint]*models.User{
		7: {ID: 7, Email: "user@example.com", Role: models.RoleUser},
	}}
	am := NewAuthMiddleware(tokens, repo)

	router := gin.New()
	router.GET("/open", am.OptionalAuth(), func(c *gin.Context) {
		if id, ok := CurrentUserIDFromContext(c); ok {
			c.JSON(http.StatusOK, gin.H{"id": id})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": nil})
	})

	t.Run("anonymous request passes through", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})

	t.Run("valid token attaches identity", func(t *testing.T) {
		token, err := tokens.Issue(7, "user@example.com", models.RoleUser)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["id"] != float64(7) {
			t.Errorf("id = %v, want 7", body["id"])
		}
	})

	t.Run("bad token is ignored", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", "Bearer junk")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", w.Code)
		}
	})
}
