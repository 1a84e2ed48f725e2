package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/filmhub/swapper-api/internal/config"
	"github.com/filmhub/swapper-api/internal/database"
	"github.com/filmhub/swapper-api/internal/handler"
	"github.com/filmhub/swapper-api/internal/repository"
	"github.com/filmhub/swapper-api/internal/router"
	"github.com/filmhub/swapper-api/internal/storage"
)

// newTestServer wires the full route table against a throwaway sqlite
// database and upload directory, exactly as main does minus Redis and
// RabbitMQ.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Config{
		Env:            "test",
		DBDriver:       "sqlite",
		DBPath:         filepath.Join(dir, "test.db"),
		JWTSecret:      "handler-test-secret",
		TokenTTLHours:  24,
		BcryptCost:     bcrypt.MinCost,
		UploadDir:      filepath.Join(dir, "uploads"),
		MaxUploadBytes: 16 << 20,
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db, cfg.DBDriver))

	files, err := storage.NewFileStore(cfg.UploadDir)
	require.NoError(t, err)

	e := echo.New()
	router.RegisterRoutes(e, router.Deps{
		Auth:      handler.NewAuthHandler(cfg, repository.NewUserRepo(db)),
		Images:    handler.NewImageHandler(cfg, repository.NewImageRepo(db, files), files, nil),
		Cinemas:   handler.NewCinemaHandler(cfg, repository.NewCinemaRepo(db), nil),
		Debug:     handler.NewDebugHandler(db, cfg.DBDriver),
		JWTSecret: cfg.JWTSecret,
	})
	return e
}

func doJSON(e *echo.Echo, method, target, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// registerAndLogin creates an account and returns a valid token.
func registerAndLogin(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	creds := map[string]any{"username": username, "password": "secret1"}
	rec := doJSON(e, http.MethodPost, "/api/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(e, http.MethodPost, "/api/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// uploadImage posts a small multipart upload and returns the recorder.
func uploadImage(t *testing.T, e *echo.Echo, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/swapper/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
