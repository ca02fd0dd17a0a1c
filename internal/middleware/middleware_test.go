package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-gradebook-api/internal/models"
	appErrors "github.com/noah-isme/sma-gradebook-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type tokenStub map[string]*models.JWTClaims

func (s tokenStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
}

type teacherResolverStub map[string]*models.Teacher

func (s teacherResolverStub) ResolveByUserID(_ context.Context, userID string) (*models.Teacher, error) {
	if teacher, ok := s[userID]; ok {
		return teacher, nil
	}
	return nil, appErrors.Clone(appErrors.ErrForbidden, "teacher profile not found")
}

type auditRecorder struct {
	entries []*models.AuditLog
	err     error
}

func (r *auditRecorder) CreateAuditLog(_ context.Context, entry *models.AuditLog) error {
	r.entries = append(r.entries, entry)
	return r.err
}

type observerStub struct {
	paths    []string
	statuses []int
}

func (o *observerStub) ObserveHTTPRequest(_, path string, status int, _ time.Duration) {
	o.paths = append(o.paths, path)
	o.statuses = append(o.statuses, status)
}

var testTokens = tokenStub{
	"teacher-token": {UserID: "u1", Role: models.RoleTeacher},
	"orphan-token":  {UserID: "u2", Role: models.RoleTeacher},
	"student-token": {UserID: "u3", Role: models.RoleStudent},
}

func teacherRouter(audit *auditRecorder) *gin.Engine {
	r := gin.New()
	group := r.Group("/", JWT(testTokens), RequireRoles(models.RoleTeacher), TeacherContext(teacherResolverStub{"u1": {ID: "t1", UserID: "u1"}}))
	group.PUT("/grades/:id", Audit(audit, nil, models.AuditActionGradeUpdate, "academic_record"), func(c *gin.Context) {
		teacher, ok := TeacherFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, teacher.ID)
	})
	return r
}

func perform(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTeacherChain(t *testing.T) {
	audit := &auditRecorder{}
	r := teacherRouter(audit)

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token teacher-token", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer student-token", http.StatusForbidden},
		{"no teacher profile", "Bearer orphan-token", http.StatusForbidden},
		{"teacher", "Bearer teacher-token", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := perform(r, http.MethodPut, "/grades/rec-1", tc.header)
			assert.Equal(t, tc.status, w.Code)
		})
	}

	require.Len(t, audit.entries, 1)
	entry := audit.entries[0]
	assert.Equal(t, models.AuditActionGradeUpdate, entry.Action)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u1", *entry.UserID)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, "rec-1", *entry.ResourceID)
	assert.Contains(t, string(entry.NewValues), `"teacher_id":"t1"`)
}

func TestAuditWriteFailureDoesNotAffectResponse(t *testing.T) {
	audit := &auditRecorder{err: errors.New("db down")}
	w := perform(teacherRouter(audit), http.MethodPut, "/grades/rec-1", "Bearer teacher-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t1", w.Body.String())
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &observerStub{}
	r := gin.New()
	r.Use(Metrics(observer))
	r.GET("/assignments/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	perform(r, http.MethodGet, "/assignments/abc", "")
	perform(r, http.MethodGet, "/nowhere", "")

	assert.Equal(t, []string{"/assignments/:id", "unmatched"}, observer.paths)
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNotFound}, observer.statuses)
}

func TestResponseMeta(t *testing.T) {
	r := gin.New()
	r.Use(WithResponseMeta())
	var meta map[string]interface{}
	r.GET("/", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ResponseMeta(c)
		c.Status(http.StatusOK)
	})

	perform(r, http.MethodGet, "/", "")
	assert.Equal(t, true, meta[MetaCacheHit])
	assert.Contains(t, meta, MetaProcessingTime)
}
