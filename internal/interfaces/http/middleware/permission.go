package middleware

import (
	"context"
	"net/http"

	"github.com/arflow/backend/internal/domain/identity"
	"github.com/arflow/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MatrixProvider resolves a user's effective permission matrix
type MatrixProvider interface {
	BuildMatrix(ctx context.Context, userID uuid.UUID) (identity.Matrix, error)
}

// RequirePermission enforces one key/action pair from the consolidated
// permission catalog. It must run after JWTAuth so the user ID is in the
// context.
func RequirePermission(provider MatrixProvider, key identity.PermissionKey, action identity.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(GetJWTUserID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
			return
		}

		matrix, err := provider.BuildMatrix(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeInternal, "Failed to resolve permissions", c.GetString(RequestIDKey)))
			return
		}

		if !matrix.Can(key, action) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Insufficient permissions", c.GetString(RequestIDKey)))
			return
		}

		c.Next()
	}
}
