package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a Server over an in-memory SQLite database with no
// Redis client, and a Fiber app with the real routes and auth middleware.
func setupTestServer(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// The in-memory database exists per connection; keep the pool at one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}))

	cfg := &config.Config{
		JWTSecret:     "handler-test-secret",
		TokenTTLHours: 1,
		Port:          "0",
		Env:           "test",
	}
	s := NewServerWithDeps(cfg, db, nil)

	app := fiber.New()
	s.SetupRoutes(app)
	return app, db
}

// jsonRequest builds a request with a JSON body and, when token is non-empty,
// the x-access-token header.
func jsonRequest(t *testing.T, method, target string, body any, token string) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(tokenHeader, token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// signupUser registers a user directly through the API.
func signupUser(t *testing.T, app *fiber.App, username, password string) {
	t.Helper()

	req := jsonRequest(t, http.MethodPost, "/signup", map[string]string{
		"username": username,
		"password": password,
	}, "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

// loginUser logs in through the API and returns the issued token.
func loginUser(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()

	req := jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	token, ok := body["token"].(string)
	require.True(t, ok, "login response must carry a token")
	require.NotEmpty(t, token)
	return token
}

// registeredUser signs up and logs in a user, returning the token.
func registeredUser(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	signupUser(t, app, username, "test-password-123")
	return loginUser(t, app, username, "test-password-123")
}

// createPost creates a post through the API and returns the listing seen by
// the caller afterwards.
func createPost(t *testing.T, app *fiber.App, token, title, content string) {
	t.Helper()

	req := jsonRequest(t, http.MethodPost, "/blog/create-post", map[string]string{
		"title":   title,
		"content": content,
	}, token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
