package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheControlHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/public/css/style.css", nil)

	CacheControl(365 * 24 * time.Hour)(c)

	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))
}
