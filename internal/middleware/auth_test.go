package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withSession injects a prepared session, standing in for LoadSession.
func withSession(sess *service.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func TestRequireSessionAllowsAuthenticated(t *testing.T) {
	sess := &service.Session{ID: "s1", User: &model.User{ID: 1, Username: "admin"}}

	r := gin.New()
	r.GET("/", withSession(sess), RequireSession(), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireSessionRedirectsAnonymous(t *testing.T) {
	sess := &service.Session{ID: "s1"}

	r := gin.New()
	r.GET("/", withSession(sess), RequireSession(), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Equal(t, []string{MsgLoginRequired}, sess.Flashes)
	assert.True(t, sess.Dirty())
}

func TestRejectIfSessionRedirectsAuthenticated(t *testing.T) {
	sess := &service.Session{ID: "s1", User: &model.User{ID: 1, Username: "admin"}}

	r := gin.New()
	r.GET("/login", withSession(sess), RejectIfSession(), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRejectIfSessionAllowsAnonymous(t *testing.T) {
	sess := &service.Session{ID: "s1"}

	r := gin.New()
	r.GET("/login", withSession(sess), RejectIfSession(), okHandler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
