package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"goldtrack/internal/config"
	"goldtrack/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

var testConfig = &config.Config{JWT: config.JWTConfig{Secret: "test-secret", AccessTokenMins: 15}}

// whoami echoes the resolved caller
func whoami(c *fiber.Ctx) error {
	id := Identity(c)
	if id == nil {
		return c.SendString("anonymous")
	}
	return c.SendString(id.UserID + "|" + id.Email)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestOptionalAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", OptionalAuth(testConfig), whoami)

	token, err := jwt.GenerateAccessToken("u-1", "a@example.com", "test-secret", 15)
	if err != nil {
		t.Fatal(err)
	}
	wrong, err := jwt.GenerateAccessToken("u-1", "", "other-secret", 15)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{"no token", "", "", "anonymous"},
		{"bearer", "Bearer " + token, "", "u-1|a@example.com"},
		{"cookie", "", token, "u-1|a@example.com"},
		{"bad signature", "Bearer " + wrong, "", "anonymous"},
		{"not bearer", "Basic " + token, "", "anonymous"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := body(t, resp); got != tt.want {
				t.Errorf("caller = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRequireAuth(t *testing.T) {
	app := fiber.New()
	app.Get("/", RequireAuth(testConfig), whoami)

	expired, err := jwt.GenerateAccessToken("u-1", "", "test-secret", -1)
	if err != nil {
		t.Fatal(err)
	}
	valid, err := jwt.GenerateAccessToken("u-1", "", "test-secret", 15)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/private", PrivateCacheHeaders(time.Hour), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/none", NoCacheHeaders(), func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get("Cache-Control"); got != "private, max-age=3600" {
		t.Errorf("private Cache-Control = %q", got)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/none", nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get("Pragma"); got != "no-cache" {
		t.Errorf("Pragma = %q", got)
	}
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := body(t, resp); got != `{"success":false,"error":"Cannot GET /missing"}` {
		t.Errorf("body = %s", got)
	}
}
