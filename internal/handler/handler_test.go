package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Louis-BT/Student-Portal/internal/config"
	"github.com/Louis-BT/Student-Portal/internal/database"
	"github.com/Louis-BT/Student-Portal/internal/router"
	"github.com/Louis-BT/Student-Portal/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	testAdminEmail    = "admin@test.local"
	testAdminPassword = "AdminPass123"
)

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	cfg      *config.Config
	sessions session.Store
}

// setupEnv builds a full application over a throwaway sqlite database
// and an in-memory session store.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "portal_test.db"),
		},
		Session: config.SessionConfig{
			Secret:      "test-secret-key",
			Store:       "memory",
			ExpireHours: 24,
			CookieName:  "sp_session",
		},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Admin: config.AdminConfig{
			Email:    testAdminEmail,
			Password: testAdminPassword,
		},
		Upload: config.UploadConfig{Dir: filepath.Join(t.TempDir(), "uploads")},
		News:   config.NewsConfig{FeedLimit: 50},
	}

	db, err := database.Init(cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.EnsureAdmin(db, cfg.Admin, cfg.Security.BcryptCost))

	sessions, err := session.Open(cfg.Session, db)
	require.NoError(t, err)

	return &testEnv{
		router:   router.SetupRouter(cfg, db, sessions),
		db:       db,
		cfg:      cfg,
		sessions: sessions,
	}
}

// doJSON sends a JSON request; token may be empty for anonymous calls.
func (e *testEnv) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// signup registers an account and fails the test on anything but success.
func (e *testEnv) signup(t *testing.T, name, email, password string) {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/auth/signup", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "signup failed: %s", w.Body.String())
}

// login returns the bearer token for the given credentials.
func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	w := e.doJSON(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())

	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (e *testEnv) loginAdmin(t *testing.T) string {
	t.Helper()
	return e.login(t, testAdminEmail, testAdminPassword)
}
