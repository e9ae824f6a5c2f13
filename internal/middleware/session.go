package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dapodiksmk/siswa-web/internal/service"
)

// ContextKeySession is the Gin context key for the request's session.
const ContextKeySession = "session"

// LoadSession resolves the session cookie into a Session and attaches it
// to the Gin context. Requests without a live session get a fresh
// anonymous one. After the handler chain the session is persisted if it
// was mutated, otherwise its inactivity window slides.
func LoadSession(sessions *service.SessionService, cookieName string, log zerolog.Logger) gin.HandlerFunc {
	maxAge := int(sessions.TTL().Seconds())

	return func(c *gin.Context) {
		var sess *service.Session

		if id, err := c.Cookie(cookieName); err == nil && id != "" {
			loaded, err := sessions.Get(c.Request.Context(), id)
			switch {
			case err == nil:
				sess = loaded
			case !errors.Is(err, service.ErrSessionNotFound):
				log.Error().Err(err).Msg("Session load failed")
			}
		}
		if sess == nil {
			sess = sessions.New()
		}

		// The cookie must go out before any handler writes the response;
		// redirects flush headers inside the chain.
		c.SetCookie(cookieName, sess.ID, maxAge, "/", "", false, true)
		c.Set(ContextKeySession, sess)

		c.Next()

		ctx := c.Request.Context()
		if sess.Dirty() {
			if err := sessions.Save(ctx, sess); err != nil {
				log.Error().Err(err).Str("session_id", sess.ID).Msg("Session save failed")
			}
			return
		}
		if !sess.Fresh() {
			// Touch on a destroyed session is a no-op.
			if err := sessions.Touch(ctx, sess); err != nil {
				log.Error().Err(err).Str("session_id", sess.ID).Msg("Session touch failed")
			}
		}
	}
}

// GetSession returns the request's session, or nil if LoadSession did not run.
func GetSession(c *gin.Context) *service.Session {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil
	}
	sess, ok := v.(*service.Session)
	if !ok {
		return nil
	}
	return sess
}
