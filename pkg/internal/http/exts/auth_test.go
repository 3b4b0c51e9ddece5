package exts

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"git.solsynth.dev/hypernet/polls/pkg/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func newTestReader(t *testing.T) *TokenReader {
	t.Helper()
	reader, err := NewTokenReader("test-secret")
	if err != nil {
		t.Fatalf("NewTokenReader() error = %v", err)
	}
	return reader
}

func signTestToken(t *testing.T, reader *TokenReader, subject string, expiresIn time.Duration, perms ...string) string {
	t.Helper()
	token, err := reader.WriteJwt(PayloadClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
		Name:  "tester",
		Perms: perms,
	})
	if err != nil {
		t.Fatalf("WriteJwt() error = %v", err)
	}
	return token
}

func TestNewTokenReaderRequiresSecret(t *testing.T) {
	if _, err := NewTokenReader(""); err == nil {
		t.Error("expected an error for an empty secret")
	}
}

func TestReadJwt(t *testing.T) {
	reader := newTestReader(t)
	other, _ := NewTokenReader("another-secret")

	t.Run("valid token", func(t *testing.T) {
		claims, err := reader.ReadJwt(signTestToken(t, reader, "42", time.Hour, models.PermManagePolls))
		if err != nil {
			t.Fatalf("ReadJwt() error = %v", err)
		}
		account, err := claims.Account()
		if err != nil {
			t.Fatalf("Account() error = %v", err)
		}
		if account.ID != 42 || account.Name != "tester" || !account.HasPermNode(models.PermManagePolls) {
			t.Errorf("unexpected account: %+v", account)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		if _, err := reader.ReadJwt(signTestToken(t, reader, "42", -time.Hour)); err == nil {
			t.Error("expected expired token to be rejected")
		}
	})

	t.Run("foreign signature", func(t *testing.T) {
		if _, err := reader.ReadJwt(signTestToken(t, other, "42", time.Hour)); err == nil {
			t.Error("expected token signed with another secret to be rejected")
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := reader.ReadJwt("not-a-token"); err == nil {
			t.Error("expected garbage token to be rejected")
		}
	})

	t.Run("bad subject", func(t *testing.T) {
		claims, err := reader.ReadJwt(signTestToken(t, reader, "alice", time.Hour))
		if err != nil {
			t.Fatalf("ReadJwt() error = %v", err)
		}
		if _, err := claims.Account(); err == nil {
			t.Error("expected non numeric subject to be rejected")
		}
	})
}

func newGuardedApp(reader *TokenReader) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(ContextMiddleware(reader))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if err := EnsureAuthenticated(c); err != nil {
			return err
		}
		account, _ := GetAccount(c)
		return c.JSON(account)
	})
	app.Get("/manage", func(c *fiber.Ctx) error {
		if err := EnsureGrantedPerm(c, models.PermManagePolls); err != nil {
			return err
		}
		return c.SendString("ok")
	})
	return app
}

func TestContextMiddleware(t *testing.T) {
	reader := newTestReader(t)
	app := newGuardedApp(reader)

	tests := []struct {
		name   string
		path   string
		setup  func(req *http.Request)
		status int
	}{
		{"anonymous", "/whoami", func(req *http.Request) {}, fiber.StatusUnauthorized},
		{"bearer token", "/whoami", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signTestToken(t, reader, "7", time.Hour))
		}, fiber.StatusOK},
		{"cookie token", "/whoami", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: signTestToken(t, reader, "7", time.Hour)})
		}, fiber.StatusOK},
		{"expired token is anonymous", "/whoami", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signTestToken(t, reader, "7", -time.Hour))
		}, fiber.StatusUnauthorized},
		{"missing permission", "/manage", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signTestToken(t, reader, "7", time.Hour))
		}, fiber.StatusForbidden},
		{"granted permission", "/manage", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+signTestToken(t, reader, "7", time.Hour, models.PermManagePolls))
		}, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			tt.setup(req)
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			if resp.StatusCode != tt.status {
				body, _ := io.ReadAll(resp.Body)
				t.Errorf("Expected status %d, got %d. Body: %s", tt.status, resp.StatusCode, body)
			}
		})
	}
}

func TestContextMiddlewareWithoutReader(t *testing.T) {
	app := newGuardedApp(nil)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer whatever")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", fiber.StatusUnauthorized, resp.StatusCode)
	}
}

func TestNoticeRoundTrip(t *testing.T) {
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		SetNotice(c, "Voting is not allowed!")
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/get", func(c *fiber.Ctx) error {
		return c.SendString(ConsumeNotice(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil), -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	var notice *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == CookieNotice {
			notice = cookie
		}
	}
	if notice == nil {
		t.Fatal("expected notice cookie to be set")
	}

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(&http.Cookie{Name: CookieNotice, Value: notice.Value})
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "Voting is not allowed!" {
		t.Errorf("expected notice to round trip, got %q", body)
	}
}
