// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/bookverse-storefront/internal/backend"
	"github.com/your-org/bookverse-storefront/internal/config"
	"github.com/your-org/bookverse-storefront/internal/domain/session"
	"github.com/your-org/bookverse-storefront/internal/infrastructure/store"
	"github.com/your-org/bookverse-storefront/internal/pkg/auth"
	"github.com/your-org/bookverse-storefront/internal/pkg/notify"
)

// Context keys set by the session middleware.
const (
	sessionIDKey    = "session_id"
	sessionStoreKey = "session_store"
	sessionGuardKey = "session_guard"
	sessionSinkKey  = "session_sink"
	sessionNotesKey = "session_notes"
)

// Session establishes a browser session for every request. The session
// id travels in a signed cookie; the cookie carries nothing else. All
// state for the session lives in the store under a per-session prefix.
//
// Requests belonging to the same session are serialized with a
// per-session mutex, so the cart and identity never see interleaved
// writes from concurrent tabs.
func Session(cfg *config.Config, base store.Store, api *backend.Client) gin.HandlerFunc {
	sessions := auth.NewSessionManager(cfg)
	admins := auth.NewAdminCredential(cfg)
	logSink := notify.NewLogSink(logrus.StandardLogger())

	var mu sync.Mutex
	locks := make(map[string]*sync.Mutex)

	acquire := func(id string) *sync.Mutex {
		mu.Lock()
		defer mu.Unlock()
		lock, ok := locks[id]
		if !ok {
			lock = &sync.Mutex{}
			locks[id] = lock
		}
		return lock
	}

	return func(c *gin.Context) {
		var sessionID string
		if token, err := c.Cookie(cfg.Session.CookieName); err == nil {
			if id, err := sessions.Verify(token); err == nil {
				sessionID = id
			}
		}

		// Missing, expired or tampered cookie: start a fresh session.
		if sessionID == "" {
			sessionID = sessions.NewSessionID()
			token, err := sessions.Issue(sessionID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to establish session",
				})
				c.Abort()
				return
			}
			c.SetCookie(cfg.Session.CookieName, token, int(cfg.Session.TokenTTL.Seconds()), "/", "", cfg.Session.Secure, true)
		}

		lock := acquire(sessionID)
		lock.Lock()
		defer lock.Unlock()

		scoped := store.WithPrefix(base, "session:"+sessionID+":")
		recorder := notify.NewRecorder()
		sink := notify.Fanout{logSink, recorder}
		guard := session.NewGuard(c.Request.Context(), scoped, sink, api, admins)

		c.Set(sessionIDKey, sessionID)
		c.Set(sessionStoreKey, scoped)
		c.Set(sessionGuardKey, guard)
		c.Set(sessionSinkKey, sink)
		c.Set(sessionNotesKey, recorder)

		c.Next()
	}
}

// SessionIDFromContext extracts the session id from gin context
func SessionIDFromContext(c *gin.Context) string {
	id, exists := c.Get(sessionIDKey)
	if !exists {
		return ""
	}
	return id.(string)
}

// StoreFromContext extracts the session-scoped store from gin context
func StoreFromContext(c *gin.Context) store.Store {
	s, exists := c.Get(sessionStoreKey)
	if !exists {
		return nil
	}
	return s.(store.Store)
}

// GuardFromContext extracts the session guard from gin context
func GuardFromContext(c *gin.Context) *session.Guard {
	g, exists := c.Get(sessionGuardKey)
	if !exists {
		return nil
	}
	return g.(*session.Guard)
}

// SinkFromContext extracts the notification sink from gin context
func SinkFromContext(c *gin.Context) notify.Sink {
	s, exists := c.Get(sessionSinkKey)
	if !exists {
		return notify.Fanout{}
	}
	return s.(notify.Sink)
}

// NotificationsFromContext returns the notifications emitted while
// handling the current request
func NotificationsFromContext(c *gin.Context) []notify.Notification {
	r, exists := c.Get(sessionNotesKey)
	if !exists {
		return nil
	}
	return r.(*notify.Recorder).Notes
}
