package handler_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadResource(t *testing.T, env *testEnv, token, title string) uint {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", title))
	require.NoError(t, mw.WriteField("category", "notes"))
	part, err := mw.CreateFormFile("file", "lecture.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 fake lecture notes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/library/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resource := decodeBody(t, w)["resource"].(map[string]interface{})
	assert.Equal(t, "PENDING", resource["status"])
	return uint(resource["id"].(float64))
}

func publicResourceTitles(t *testing.T, env *testEnv) []string {
	t.Helper()
	w := env.doJSON(t, http.MethodGet, "/api/library/resources", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var titles []string
	for _, item := range decodeBody(t, w)["resources"].([]interface{}) {
		titles = append(titles, item.(map[string]interface{})["title"].(string))
	}
	return titles
}

func TestLibrary_PendingInvisibleUntilApproved(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@x.com", "pw123456")
	studentToken := env.login(t, "alice@x.com", "pw123456")
	adminToken := env.loginAdmin(t)

	resourceID := uploadResource(t, env, studentToken, "Calculus Notes")

	// pending uploads never appear in the public listing
	assert.NotContains(t, publicResourceTitles(t, env), "Calculus Notes")

	// the admin listing sees every status
	w := env.doJSON(t, http.MethodGet, "/api/admin/resources", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	all := decodeBody(t, w)["resources"].([]interface{})
	require.Len(t, all, 1)
	assert.Equal(t, "PENDING", all[0].(map[string]interface{})["status"])

	w = env.doJSON(t, http.MethodPost, "/api/admin/resources/approve", adminToken, map[string]interface{}{
		"id": resourceID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// approval makes it public
	assert.Contains(t, publicResourceTitles(t, env), "Calculus Notes")
}

func TestLibrary_UploadRequiresAuth(t *testing.T) {
	env := setupEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Anonymous Upload"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/library/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLibrary_AdminDelete(t *testing.T) {
	env := setupEnv(t)
	env.signup(t, "Alice", "alice@x.com", "pw123456")
	studentToken := env.login(t, "alice@x.com", "pw123456")
	adminToken := env.loginAdmin(t)

	resourceID := uploadResource(t, env, studentToken, "Old Notes")

	w := env.doJSON(t, http.MethodDelete, "/api/admin/resources/2000", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.doJSON(t, http.MethodDelete, "/api/admin/resources/"+itoa(resourceID), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.doJSON(t, http.MethodGet, "/api/admin/resources", adminToken, nil)
	assert.Empty(t, decodeBody(t, w)["resources"])
}

func itoa(n uint) string {
	return fmt.Sprintf("%d", n)
}
