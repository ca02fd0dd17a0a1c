package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func do(origins []string, method, origin string, preflight bool) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/grades/export", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(method, "/grades/export", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if preflight {
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowListedOrigin(t *testing.T) {
	rec := do([]string{"https://app.school.id/"}, http.MethodGet, "https://app.school.id", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.school.id", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), "Content-Disposition")
}

func TestCORSWildcardOmitsCredentials(t *testing.T) {
	rec := do(nil, http.MethodGet, "https://anywhere.example", false)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSPreflight(t *testing.T) {
	rec := do([]string{"https://app.school.id"}, http.MethodOptions, "https://app.school.id", true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, allowMethods, rec.Header().Get("Access-Control-Allow-Methods"))

	rec = do([]string{"https://app.school.id"}, http.MethodOptions, "https://evil.example", true)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCORSUnknownOriginPassesWithoutHeaders(t *testing.T) {
	rec := do([]string{"https://app.school.id"}, http.MethodGet, "https://evil.example", false)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
