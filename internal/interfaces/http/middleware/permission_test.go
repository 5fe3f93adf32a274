package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arflow/backend/internal/domain/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubMatrixProvider struct {
	matrix identity.Matrix
	err    error
}

func (s *stubMatrixProvider) BuildMatrix(_ context.Context, _ uuid.UUID) (identity.Matrix, error) {
	return s.matrix, s.err
}

func newPermissionRouter(provider MatrixProvider, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(JWTUserIDKey, userID)
		}
		c.Next()
	})
	router.POST("/tickets",
		RequirePermission(provider, identity.PermTickets, identity.ActionCreate),
		func(c *gin.Context) { c.Status(http.StatusCreated) })
	return router
}

func TestRequirePermission(t *testing.T) {
	granted := identity.Matrix{
		identity.PermTickets: identity.ResolvedPermission{
			Key:   identity.PermTickets,
			Grant: identity.Grant{CanView: true, CanCreate: true},
		},
	}

	t.Run("allows granted action", func(t *testing.T) {
		router := newPermissionRouter(&stubMatrixProvider{matrix: granted}, uuid.NewString())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tickets", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("denies missing grant", func(t *testing.T) {
		viewOnly := identity.Matrix{
			identity.PermTickets: identity.ResolvedPermission{
				Key:   identity.PermTickets,
				Grant: identity.Grant{CanView: true},
			},
		}
		router := newPermissionRouter(&stubMatrixProvider{matrix: viewOnly}, uuid.NewString())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tickets", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("denies unknown key", func(t *testing.T) {
		router := newPermissionRouter(&stubMatrixProvider{matrix: identity.Matrix{}}, uuid.NewString())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tickets", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("rejects unauthenticated request", func(t *testing.T) {
		router := newPermissionRouter(&stubMatrixProvider{matrix: granted}, "")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tickets", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("resolver failure is an internal error", func(t *testing.T) {
		router := newPermissionRouter(&stubMatrixProvider{err: errors.New("db down")}, uuid.NewString())

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tickets", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
