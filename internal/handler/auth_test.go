package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/Louis-BT/Student-Portal/internal/models"
	"github.com/Louis-BT/Student-Portal/internal/session"
	"github.com/Louis-BT/Student-Portal/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_DuplicateEmail(t *testing.T) {
	env := setupEnv(t)

	env.signup(t, "Alice", "alice@x.com", "pw123456")

	w := env.doJSON(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"name":     "Alice Again",
		"email":    "alice@x.com",
		"password": "pw123456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "already exists")

	// no second row was created
	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Where("email = ?", "alice@x.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLogin_EnumerationResistance(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@x.com", "pw123456")

	wrongPassword := env.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "alice@x.com",
		"password": "not-the-password",
	})
	unknownEmail := env.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@x.com",
		"password": "whatever123",
	})

	// both failures must be indistinguishable
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogout_InvalidatesSession(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@x.com", "pw123456")
	token := env.login(t, "alice@x.com", "pw123456")

	// token works before logout
	w := env.doJSON(t, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// reusing the token after logout is rejected
	w = env.doJSON(t, http.MethodGet, "/api/user/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_ExpiredSessionRejected(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@x.com", "pw123456")

	var user models.User
	require.NoError(t, env.db.First(&user, "email = ?", "alice@x.com").Error)

	// hand-craft a session that expired an hour ago
	sess := session.New(&user, 24*time.Hour)
	sess.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, env.sessions.Create(context.Background(), sess))

	token, err := util.GenerateToken(env.cfg.Session.Secret, sess.ID, user.ID, 24*time.Hour)
	require.NoError(t, err)

	w := env.doJSON(t, http.MethodGet, "/api/user/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForgotPassword_AlwaysSucceeds(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@x.com", "pw123456")

	known := env.doJSON(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{
		"email": "alice@x.com",
	})
	unknown := env.doJSON(t, http.MethodPost, "/auth/forgot-password", "", map[string]string{
		"email": "nobody@x.com",
	})

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, http.StatusOK, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestSignup_AdminEmailBypass(t *testing.T) {
	env := setupEnv(t)
	env.cfg.Admin.BootstrapEmails = []string{"dean@x.com"}

	env.signup(t, "Dean", "dean@x.com", "pw123456")

	var user models.User
	require.NoError(t, env.db.First(&user, "email = ?", "dean@x.com").Error)
	assert.Equal(t, models.RoleAdmin, user.Role)

	// the bypass account can reach the admin console
	token := env.login(t, "dean@x.com", "pw123456")
	w := env.doJSON(t, http.MethodGet, "/api/admin/stats", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfile_SignupLoginUpdateScenario(t *testing.T) {
	env := setupEnv(t)

	env.signup(t, "Alice", "alice@x.com", "pw123456")
	token := env.login(t, "alice@x.com", "pw123456")

	// profile returns name and email but never the password hash
	w := env.doJSON(t, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, "alice@x.com", user["email"])
	assert.NotContains(t, w.Body.String(), "password")

	w = env.doJSON(t, http.MethodPost, "/api/user/update-profile", token, map[string]string{
		"institution": "Springfield University",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user = decodeBody(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "Springfield University", user["institution"])
}

func TestSaveGPA_RoundTrip(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@x.com", "pw123456")
	token := env.login(t, "alice@x.com", "pw123456")

	w := env.doJSON(t, http.MethodPost, "/api/user/save-gpa", token, map[string]interface{}{
		"gpa": 3.7,
		"courses": []map[string]interface{}{
			{"name": "Algorithms", "credits": 4, "grade": "A"},
			{"name": "Databases", "credits": 3, "grade": "A-"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.doJSON(t, http.MethodGet, "/api/user/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decodeBody(t, w)["user"].(map[string]interface{})
	assert.InDelta(t, 3.7, user["gpa"], 0.001)

	courses := user["courses"].([]interface{})
	require.Len(t, courses, 2)
	// submitted order is preserved
	first := courses[0].(map[string]interface{})
	assert.Equal(t, "Algorithms", first["name"])

	// out-of-range GPA rejected
	w = env.doJSON(t, http.MethodPost, "/api/user/save-gpa", token, map[string]interface{}{
		"gpa": 5.1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
