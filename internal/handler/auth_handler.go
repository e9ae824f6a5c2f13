package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dapodiksmk/siswa-web/internal/middleware"
	"github.com/dapodiksmk/siswa-web/internal/model"
	"github.com/dapodiksmk/siswa-web/internal/service"
)

// MsgLoginFailed is flashed on any failed login attempt. The message is
// the same for unknown usernames and wrong passwords.
const MsgLoginFailed = "Username atau password salah!"

// AuthHandler handles the login and logout flows.
type AuthHandler struct {
	authService *service.AuthService
	sessions    *service.SessionService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, sessions *service.SessionService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		log:         log,
	}
}

// ShowLogin godoc
// GET /login
// Renders the login form with any queued flash messages.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	sess := middleware.GetSession(c)

	c.HTML(http.StatusOK, "login", gin.H{
		"title": "Login",
		"msg":   sess.PopFlashes(),
	})
}

// Login godoc
// POST /login
// Exact username lookup plus password comparison. Success stores the full
// user document in the session; failure flashes one indistinguishable
// message and returns to the form. No lockout, no throttling.
func (h *AuthHandler) Login(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		sess.AddFlash(MsgLoginFailed)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Error().Err(err).Msg("Login lookup failed")
		}
		sess.AddFlash(MsgLoginFailed)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	sess.SetUser(user)
	c.Redirect(http.StatusFound, "/")
}

// Logout godoc
// POST /logout
// Destroys the server-side session. On destruction failure the user lands
// back on home; on success, on the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)

	if err := h.sessions.Destroy(c.Request.Context(), sess.ID); err != nil {
		h.log.Error().Err(err).Str("session_id", sess.ID).Msg("Session destroy failed")
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
