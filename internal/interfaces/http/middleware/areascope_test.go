package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stratix/backend/internal/domain/identity"
	"github.com/stratix/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProfileRepository struct {
	mock.Mock
}

func (m *mockProfileRepository) Save(ctx context.Context, profile *identity.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *mockProfileRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *mockProfileRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*identity.UserProfile, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserProfile), args.Error(1)
}

func (m *mockProfileRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*identity.UserProfile, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserProfile), args.Error(1)
}

func (m *mockProfileRepository) FindByEmailGlobal(ctx context.Context, email string) (*identity.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.UserProfile), args.Error(1)
}

func (m *mockProfileRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter identity.UserProfileFilter) ([]*identity.UserProfile, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*identity.UserProfile), args.Get(1).(int64), args.Error(2)
}

func (m *mockProfileRepository) FindByArea(ctx context.Context, tenantID, areaID uuid.UUID) ([]*identity.UserProfile, error) {
	args := m.Called(ctx, tenantID, areaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*identity.UserProfile), args.Error(1)
}

func (m *mockProfileRepository) ExistsByEmail(ctx context.Context, tenantID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, tenantID, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockProfileRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

func newManagerProfile(t *testing.T, tenantID uuid.UUID, areaID *uuid.UUID) *identity.UserProfile {
	t.Helper()
	profile, err := identity.NewUserProfile(tenantID, "manager@acme.test", "Test Manager", "s3cret-pass", identity.RoleManager)
	require.NoError(t, err)
	if areaID != nil {
		require.NoError(t, profile.AssignArea(areaID))
	}
	return profile
}

func scopedRequest(t *testing.T, router *gin.Engine, jwtService *auth.JWTService, tenantID, userID uuid.UUID, role, path string) *httptest.ResponseRecorder {
	t.Helper()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: tenantID,
		UserID:   userID,
		Email:    role + "@acme.test",
		Role:     role,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAreaScopeMiddleware_ManagerScope(t *testing.T) {
	jwtService := newTestJWTService()
	tenantID := uuid.New()
	areaID := uuid.New()

	profile := newManagerProfile(t, tenantID, &areaID)

	repo := new(mockProfileRepository)
	repo.On("FindByID", mock.Anything, tenantID, profile.ID).Return(profile, nil)

	var captured *uuid.UUID
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.Use(AreaScopeMiddleware(repo))
	router.GET("/test", func(c *gin.Context) {
		captured = GetScopedAreaID(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rec := scopedRequest(t, router, jwtService, tenantID, profile.ID, "manager", "/test")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, areaID, *captured)
	repo.AssertExpectations(t)
}

func TestAreaScopeMiddleware_AdminUnscoped(t *testing.T) {
	jwtService := newTestJWTService()
	repo := new(mockProfileRepository)

	var captured *uuid.UUID
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.Use(AreaScopeMiddleware(repo))
	router.GET("/test", func(c *gin.Context) {
		captured = GetScopedAreaID(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rec := scopedRequest(t, router, jwtService, uuid.New(), uuid.New(), "admin", "/test")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, captured)
	// Admin never triggers a profile lookup
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestAreaScopeMiddleware_LookupErrorFailsOpen(t *testing.T) {
	jwtService := newTestJWTService()
	tenantID := uuid.New()
	userID := uuid.New()

	repo := new(mockProfileRepository)
	repo.On("FindByID", mock.Anything, tenantID, userID).Return(nil, errors.New("db down"))

	var captured *uuid.UUID
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.Use(AreaScopeMiddleware(repo))
	router.GET("/test", func(c *gin.Context) {
		captured = GetScopedAreaID(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	rec := scopedRequest(t, router, jwtService, tenantID, userID, "manager", "/test")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, captured)
}

func TestAreaAccessAllowed(t *testing.T) {
	areaID := uuid.New()
	otherID := uuid.New()

	t.Run("unscoped", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.True(t, AreaAccessAllowed(c, areaID))
	})

	t.Run("matching scope", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(ScopedAreaIDKey, areaID)
		assert.True(t, AreaAccessAllowed(c, areaID))
	})

	t.Run("mismatched scope", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(ScopedAreaIDKey, otherID)
		assert.False(t, AreaAccessAllowed(c, areaID))
	})
}

func TestRequireAreaParamAccess(t *testing.T) {
	areaID := uuid.New()
	otherID := uuid.New()

	newRouter := func(scoped *uuid.UUID) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if scoped != nil {
				c.Set(ScopedAreaIDKey, *scoped)
			}
			c.Next()
		})
		router.Use(RequireAreaParamAccess("id", nil))
		router.GET("/areas/:id", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	t.Run("unscoped caller", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/areas/"+areaID.String(), nil)
		newRouter(nil).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("scoped caller matching area", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/areas/"+areaID.String(), nil)
		newRouter(&areaID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("scoped caller other area", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/areas/"+otherID.String(), nil)
		newRouter(&areaID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "AREA_SCOPE_NOT_ALLOWED")
	})

	t.Run("invalid id falls through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/areas/not-a-uuid", nil)
		newRouter(&areaID).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
