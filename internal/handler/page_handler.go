package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dapodiksmk/siswa-web/internal/middleware"
)

// PageHandler serves the pages with no data-store access.
type PageHandler struct{}

// NewPageHandler creates a new PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home godoc
// GET /
// Welcome page for the authenticated user.
func (h *PageHandler) Home(c *gin.Context) {
	sess := middleware.GetSession(c)

	c.HTML(http.StatusOK, "index", gin.H{
		"title": "Selamat datang",
		"user":  sess.User,
	})
}

// About godoc
// GET /about
// Static informational page, no guard.
func (h *PageHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about", gin.H{
		"title": "Halaman About",
	})
}
