package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"furniture_back_end/internal/database"
	"furniture_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

func TestSessionCreatesAndReuses(t *testing.T) {
	store := database.NewSessionStore()
	r := gin.New()
	r.Use(Session(NewCookieStore("secret", 3600, false), store, zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	first := w.Body.String()
	if first == "" {
		t.Fatal("no session id")
	}
	if _, ok := store.Get(first); !ok {
		t.Fatal("session not stored")
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookie {
		t.Fatalf("cookies = %v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != first {
		t.Fatalf("session not reused: %s != %s", w.Body.String(), first)
	}

	store.Delete(first)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() == first {
		t.Fatal("forgotten session should be replaced")
	}
}

func TestSessionIgnoresTamperedCookie(t *testing.T) {
	r := gin.New()
	r.Use(Session(NewCookieStore("secret", 3600, false), database.NewSessionStore(), zap.NewNop()))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() == "" {
		t.Fatalf("status %d body %q", w.Code, w.Body.String())
	}
}

type stubAuth struct{}

func (stubAuth) Authenticate(_ context.Context, token string) (*utils.AdminClaims, error) {
	switch token {
	case "admin":
		return &utils.AdminClaims{Role: utils.RoleAdmin}, nil
	case "clerk":
		return &utils.AdminClaims{Role: "clerk"}, nil
	}
	return nil, errors.New("bad token")
}

func TestAdminAuth(t *testing.T) {
	r := gin.New()
	r.GET("/", AdminAuth(stubAuth{}), RequireAdmin, func(c *gin.Context) {
		if AdminClaims(c) == nil {
			t.Error("claims missing")
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"admin", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Bearer clerk", http.StatusForbidden},
		{"Bearer admin", http.StatusNoContent},
		{"bearer admin", http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%q: status %d, want %d", tt.header, w.Code, tt.want)
		}
	}
}
