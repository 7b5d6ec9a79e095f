package middleware

import (
	"errors"
	"goodreads/config"
	"goodreads/database"
	"goodreads/logger"
	"goodreads/models"
	"goodreads/store"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	LoginURL = "/users/login/"

	sessionUserKey = "userId"

	// Locals keys
	LocalUser   = "user"
	LocalUserID = "userId"
)

// Sessions is the global session store used by the web pages and, as a
// fallback to bearer tokens, by the API.
var Sessions *session.Store

// InitSessions creates the session store. Sessions expire after ttl of
// inactivity.
func InitSessions(ttl time.Duration) {
	Sessions = session.New(session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:sessionid",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	})
}

// LoginUser binds userID to a fresh session id.
func LoginUser(c *fiber.Ctx, userID uint) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(sessionUserKey, userID)
	return sess.Save()
}

// LogoutUser destroys the current session, if any.
func LogoutUser(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// LoadUser resolves the session user, if any, and stores it in Locals.
// It never rejects a request.
func LoadUser(c *fiber.Ctx) error {
	sess, err := Sessions.Get(c)
	if err != nil {
		logger.Log.Warnf("Failed to read session: %v", err)
		return c.Next()
	}

	userID, ok := sessionUserID(sess.Get(sessionUserKey))
	if !ok {
		return c.Next()
	}

	users := store.NewUserStore(database.Database.Db, config.AppConfig.SaltRound)
	user, err := users.Get(c.UserContext(), userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logger.Log.Errorf("Failed to load session user %d: %v", userID, err)
		}
		return c.Next()
	}

	setUser(c, user)
	return c.Next()
}

// LoginRequired redirects anonymous callers to the login page, keeping the
// requested path in ?next=.
func LoginRequired(c *fiber.Ctx) error {
	if CurrentUser(c) != nil {
		return c.Next()
	}
	return c.Redirect(LoginRedirectURL(c.OriginalURL()), fiber.StatusFound)
}

// LoginRedirectURL builds the login URL returning to next. Slashes stay
// readable in the query value.
func LoginRedirectURL(next string) string {
	return LoginURL + "?next=" + strings.ReplaceAll(url.QueryEscape(next), "%2F", "/")
}

// SafeNext accepts only local absolute paths as a post-login target.
func SafeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalUser).(*models.User)
	return user
}

func setUser(c *fiber.Ctx, user *models.User) {
	c.Locals(LocalUser, user)
	c.Locals(LocalUserID, user.ID)
}

func sessionUserID(v interface{}) (uint, bool) {
	switch id := v.(type) {
	case uint:
		return id, id > 0
	case int:
		return uint(id), id > 0
	case int64:
		return uint(id), id > 0
	case float64:
		return uint(id), id > 0
	}
	return 0, false
}
