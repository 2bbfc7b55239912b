package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/moments/internal/db"
	"github.com/terraincognita07/moments/internal/events"
	"github.com/terraincognita07/moments/internal/i18n"
	"github.com/terraincognita07/moments/internal/kv"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testClient struct {
	t       *testing.T
	app     *fiber.App
	cookies []*http.Cookie
	headers map[string]string
}

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()
	return newTestAppWithQuota(t, kv.DefaultQuotaBytes)
}

func newTestAppWithQuota(t *testing.T, quotaBytes int64) (*fiber.App, *Handler) {
	t.Helper()
	return newTestAppWithOptions(t, quotaBytes, nil)
}

func newTestAppWithLocation(t *testing.T, location *time.Location) (*fiber.App, *Handler) {
	t.Helper()
	return newTestAppWithOptions(t, kv.DefaultQuotaBytes, location)
}

func newTestAppWithOptions(t *testing.T, quotaBytes int64, location *time.Location) (*fiber.App, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "moments-api-test.db"), zerolog.Nop())
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

	i18nManager, err := i18n.NewManager(i18n.LangEN)
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	handler, err := NewHandler(Options{
		Durable:    db.NewKVRepository(database, quotaBytes),
		Hub:        events.NewHub(),
		Sessions:   kv.NewSessions(kv.DefaultQuotaBytes, time.Hour),
		SecretKey:  testSecretKey,
		SessionTTL: time.Hour,
		Location:   location,
		I18n:       i18nManager,
		Logger:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	t.Cleanup(handler.Close)

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app, handler
}

func newTestClient(t *testing.T, app *fiber.App) *testClient {
	t.Helper()
	return &testClient{t: t, app: app, headers: map[string]string{}}
}

// do sends a request and keeps any session cookie the server issues.
func (client *testClient) do(method string, path string, body any) (*http.Response, []byte) {
	client.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			client.t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	for name, value := range client.headers {
		request.Header.Set(name, value)
	}
	for _, cookie := range client.cookies {
		request.AddCookie(cookie)
	}

	response, err := client.app.Test(request, -1)
	if err != nil {
		client.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	if session := responseCookie(response.Cookies(), sessionCookieName); session != nil {
		client.cookies = []*http.Cookie{{Name: session.Name, Value: session.Value}}
	}

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		client.t.Fatalf("read response body: %v", err)
	}
	return response, payload
}

func (client *testClient) expectStatus(method string, path string, body any, status int) []byte {
	client.t.Helper()

	response, payload := client.do(method, path, body)
	if response.StatusCode != status {
		client.t.Fatalf("%s %s: expected status %d, got %d (%s)", method, path, status, response.StatusCode, payload)
	}
	return payload
}

func decodeJSON(t *testing.T, payload []byte, target any) {
	t.Helper()
	if err := json.Unmarshal(payload, target); err != nil {
		t.Fatalf("decode response body %s: %v", payload, err)
	}
}

func readAPIError(t *testing.T, payload []byte) string {
	t.Helper()

	body := map[string]string{}
	decodeJSON(t, payload, &body)
	return body["error"]
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
