package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Louis-BT/Student-Portal/internal/config"
	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/session"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the guards.
const (
	CtxUser    = "currentUser"
	CtxSession = "currentSession"
)

// ExtractToken looks for the bearer token in the Authorization header,
// then the ?token= query parameter (downloads can't set headers), then
// the session cookie.
func ExtractToken(c *gin.Context, cookieName string) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	if tok := c.Query("token"); tok != "" {
		return tok
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

// resolve authenticates the request: token -> session row -> user row.
// The session row is the source of truth; a parsed token whose session
// is revoked or expired does not authenticate. Returns nil, nil when the
// request carries no valid identity (the 401 has already been written).
func resolve(c *gin.Context, cfg config.SessionConfig, sessions session.Store, db *gorm.DB) (*models.Session, *models.User) {
	tokenStr := ExtractToken(c, cfg.CookieName)
	if tokenStr == "" {
		util.Error(c, http.StatusUnauthorized, "authentication required")
		return nil, nil
	}

	claims, err := util.ParseToken(cfg.Secret, tokenStr)
	if err != nil {
		util.Error(c, http.StatusUnauthorized, "session expired, please log in again")
		return nil, nil
	}

	sess, err := sessions.Resolve(c.Request.Context(), claims.SessionID)
	if errors.Is(err, session.ErrNotFound) {
		util.Error(c, http.StatusUnauthorized, "session expired, please log in again")
		return nil, nil
	}
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "something went wrong")
		return nil, nil
	}
	// expiry enforced lazily, on the request that hits it
	if !sess.Active(time.Now()) {
		util.Error(c, http.StatusUnauthorized, "session expired, please log in again")
		return nil, nil
	}

	var user models.User
	if err := db.First(&user, sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnauthorized, "account no longer exists")
		} else {
			util.Error(c, http.StatusInternalServerError, "something went wrong")
		}
		return nil, nil
	}

	return sess, &user
}

// RequireAuth lets the request through iff it resolves to a live session.
func RequireAuth(cfg config.SessionConfig, sessions session.Store, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, user := resolve(c, cfg, sessions, db)
		if sess == nil {
			c.Abort()
			return
		}
		c.Set(CtxSession, sess)
		c.Set(CtxUser, user)
		c.Next()
	}
}

// RequireAdmin authenticates on its own (it never assumes RequireAuth ran
// first) and then checks the role snapshot taken at login. A promotion
// after login therefore does not reach an already-issued session.
func RequireAdmin(cfg config.SessionConfig, sessions session.Store, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, user := resolve(c, cfg, sessions, db)
		if sess == nil {
			c.Abort()
			return
		}
		if sess.Role != models.RoleAdmin {
			util.Error(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		c.Set(CtxSession, sess)
		c.Set(CtxUser, user)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user a guard stored on the context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// CurrentSession pulls the resolved session a guard stored on the context.
func CurrentSession(c *gin.Context) (*models.Session, bool) {
	v, ok := c.Get(CtxSession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*models.Session)
	if !ok || sess == nil {
		return nil, false
	}
	return sess, true
}
