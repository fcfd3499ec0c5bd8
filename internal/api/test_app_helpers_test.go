package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/memento/internal/config"
	"github.com/terraincognita07/memento/internal/db"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "admin-test-password"
)

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	uploadDir := t.TempDir()
	cfg := &config.Config{
		SecretKey:            "test-secret-key",
		TokenTTL:             time.Hour,
		DBPath:               filepath.Join(t.TempDir(), "memento-test.db"),
		Port:                 "0",
		UploadDir:            uploadDir,
		MaxImageSizeMB:       10,
		ThumbnailEdge:        800,
		AvatarMaxBytes:       5 * 1024 * 1024,
		DefaultAdminUsername: testAdminUsername,
		DefaultAdminPassword: testAdminPassword,
		DefaultAdminDOB:      "1990-01-01",
		GeocodeBaseURL:       "",
		GeocodeTimeout:       time.Second,
	}
	for _, dir := range []string{cfg.OriginalsDir(), cfg.ThumbnailsDir(), cfg.AvatarsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("create upload dir: %v", err)
		}
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	handler := NewHandler(database, cfg)
	if _, err := handler.EnsureDefaultAdmin(); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, handler
}

func doRequest(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(body) == 0 {
		return response, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		// Some endpoints answer with JSON arrays; callers parse those
		// themselves.
		return response, nil
	}
	return response, parsed
}

func formRequest(method string, path string, values url.Values, token string) *http.Request {
	request := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func jsonRequest(t *testing.T, method string, path string, payload any, token string) *http.Request {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	request := httptest.NewRequest(method, path, bytes.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func authGet(path string, token string) *http.Request {
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func login(t *testing.T, app *fiber.App, username string, password string) (string, map[string]any) {
	t.Helper()

	values := url.Values{}
	values.Set("username", username)
	values.Set("password", password)

	response, body := doRequest(t, app, formRequest(http.MethodPost, "/token", values, ""))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d, body %v", username, response.StatusCode, body)
	}

	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("login %s: missing access_token in %v", username, body)
	}
	return token, body
}

func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	token, _ := login(t, app, testAdminUsername, testAdminPassword)
	return token
}

func registerUser(t *testing.T, app *fiber.App, adminToken string, username string, password string) {
	t.Helper()

	values := url.Values{}
	values.Set("username", username)
	values.Set("password", password)

	response, body := doRequest(t, app, formRequest(http.MethodPost, "/register", values, adminToken))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("register %s: status %d, body %v", username, response.StatusCode, body)
	}
}

type multipartField struct {
	name        string
	value       string
	filename    string
	contentType string
	data        []byte
}

func multipartRequest(t *testing.T, method string, path string, token string, fields []multipartField) *http.Request {
	t.Helper()

	var buffer bytes.Buffer
	writer := multipart.NewWriter(&buffer)
	for _, field := range fields {
		if field.filename == "" {
			if err := writer.WriteField(field.name, field.value); err != nil {
				t.Fatalf("write form field %s: %v", field.name, err)
			}
			continue
		}

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field.name, field.filename))
		contentType := field.contentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create form file %s: %v", field.name, err)
		}
		if _, err := part.Write(field.data); err != nil {
			t.Fatalf("write form file %s: %v", field.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	request := httptest.NewRequest(method, path, &buffer)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	return request
}

func decodeJSONArray(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, []map[string]any) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", request.Method, request.URL.Path, err)
	}
	t.Cleanup(func() {
		_ = response.Body.Close()
	})

	body, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}

	var parsed []map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("expected a JSON array, got %q: %v", string(body), err)
	}
	return response, parsed
}
