package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MsgLoginRequired is flashed when an anonymous request hits a guarded page.
const MsgLoginRequired = "Silakan login terlebih dahulu"

// RequireSession allows the request through only when the session carries
// a user; otherwise it queues a flash message and redirects to the login
// page.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || !sess.Authenticated() {
			if sess != nil {
				sess.AddFlash(MsgLoginRequired)
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RejectIfSession is the inverse guard, used on the login page so an
// authenticated user skips straight to home.
func RejectIfSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess != nil && sess.Authenticated() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
