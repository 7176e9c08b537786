package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/internal/pkg/session"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

// UserContextMiddleware loads the signed-in user from the session into the
// request locals. Anonymous requests get a zero UserContext, and so do
// sessions revoked after their sign-in.
func UserContextMiddleware(c *fiber.Ctx) error {
	anonymous := func() error {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		c.Locals(usercontext.KeyFromProtected, false)
		return c.Next()
	}

	store := session.GetSessionStore()
	if store == nil {
		return anonymous()
	}
	sess, err := store.Get(c)
	if err != nil {
		log.Warnf("[Session] Failed to load session: %v", err)
		return anonymous()
	}

	userID, _ := sess.Get(usercontext.KeyUserID).(string)
	if userID == "" {
		return anonymous()
	}
	signedInAt, _ := sess.Get(usercontext.KeySignedInAt).(int64)
	revoked, err := session.IsRevoked(userID, signedInAt)
	if err != nil {
		log.Warnf("[Session] Revocation check failed for %s: %v", userID, err)
	}
	if revoked {
		if err := sess.Destroy(); err != nil {
			log.Warnf("[Session] Failed to destroy revoked session: %v", err)
		}
		return anonymous()
	}

	username, _ := sess.Get(usercontext.KeyUsername).(string)
	role, _ := sess.Get(usercontext.KeyRole).(string)

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     userID,
		Username:   username,
		Role:       role,
		IsLoggedIn: true,
	})
	c.Locals(usercontext.KeyFromProtected, true)
	return c.Next()
}
