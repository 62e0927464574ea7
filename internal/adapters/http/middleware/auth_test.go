package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/jasveersingh-de/opportunity/internal/auth"
)

type stubParser struct {
	claims jwt.MapClaims
	err    error
}

func (p *stubParser) Parse(string) (*jwt.Token, jwt.MapClaims, error) {
	if p.err != nil {
		return nil, nil, p.err
	}
	return &jwt.Token{Valid: true}, p.claims, nil
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "user-1",
		"email": "jane@example.com",
		"exp":   float64(time.Now().Add(time.Hour).Unix()),
	}
}

func runMiddleware(t *testing.T, parser auth.TokenParser, authorization string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := NewAuthMiddleware(parser)
	handler := mw.Handler(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec, called
}

func TestAuthMiddlewareSetsIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer token")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := NewAuthMiddleware(&stubParser{claims: validClaims()})
	handler := mw.Handler(func(c echo.Context) error {
		identity, ok := c.Get(IdentityKey).(auth.Identity)
		if !ok {
			t.Fatal("identity not set on context")
		}
		if identity.ID != "user-1" || identity.Email != "jane@example.com" {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	rec, called := runMiddleware(t, &stubParser{claims: validClaims()}, "")
	if called {
		t.Fatal("next handler should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareRejectsNonBearer(t *testing.T) {
	rec, called := runMiddleware(t, &stubParser{claims: validClaims()}, "Basic dXNlcjpwYXNz")
	if called {
		t.Fatal("next handler should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	rec, called := runMiddleware(t, &stubParser{err: jwt.ErrTokenMalformed}, "Bearer bad")
	if called {
		t.Fatal("next handler should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	claims := validClaims()
	claims["exp"] = float64(time.Now().Add(-time.Hour).Unix())
	rec, called := runMiddleware(t, &stubParser{claims: claims}, "Bearer stale")
	if called {
		t.Fatal("next handler should not run")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
