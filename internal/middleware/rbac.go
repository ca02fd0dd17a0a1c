package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
	"github.com/noah-isme/sma-gradebook-api/pkg/response"
)

// ContextTeacherKey is the gin context key storing the resolved teacher profile.
const ContextTeacherKey = "currentTeacher"

// TeacherResolver maps an authenticated user to their teacher profile.
type TeacherResolver interface {
	ResolveByUserID(ctx context.Context, userID string) (*models.Teacher, error)
}

// RequireRoles lets a request through only when the caller holds one of the roles.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if _, permitted := allowed[claims.Role]; !permitted {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// TeacherContext resolves the caller's teacher profile once per request.
func TeacherContext(teachers TeacherResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		teacher, err := teachers.ResolveByUserID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		c.Set(ContextTeacherKey, teacher)
		c.Next()
	}
}

// TeacherFromContext returns the profile attached by TeacherContext.
func TeacherFromContext(c *gin.Context) (*models.Teacher, bool) {
	value, ok := c.Get(ContextTeacherKey)
	if !ok {
		return nil, false
	}
	teacher, ok := value.(*models.Teacher)
	return teacher, ok && teacher != nil
}
