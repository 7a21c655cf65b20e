package middleware

import (
	"net/http"

	"furniture_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	SessionCookie = "storefront"
	sessionIDKey  = "session_id"
	cookieIDField = "sid"
)

// NewCookieStore builds the signed cookie that carries the session id.
func NewCookieStore(secret string, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Session attaches a server-side session to every request, creating one
// when the cookie is missing, tampered or points at a forgotten session.
func Session(cookies sessions.Store, store *database.SessionStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := cookies.Get(c.Request, SessionCookie)
		if err != nil {
			log.Debug("session cookie rejected", zap.Error(err))
		}

		id, _ := sess.Values[cookieIDField].(string)
		if _, ok := store.Get(id); id == "" || !ok {
			id = store.Create().ID
			sess.Values[cookieIDField] = id
			if err := sess.Save(c.Request, c.Writer); err != nil {
				log.Error("❌ session cookie not saved", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
				return
			}
		}

		c.Set(sessionIDKey, id)
		c.Next()
	}
}

// SessionID returns the id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}
