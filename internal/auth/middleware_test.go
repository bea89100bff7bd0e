package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"activity-platform/internal/config"

	"github.com/gin-gonic/gin"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", RequireAuth(newTestManager(t)), func(c *gin.Context) {
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", RequireAuth(newTestManager(t)), func(c *gin.Context) {
		c.Status(200)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuth_InjectsPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := newTestManager(t)
	tok, err := m.Issue(time.Now(), "user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var seen string
	r := gin.New()
	r.GET("/x", RequireAuth(m), func(c *gin.Context) {
		seen, _ = PrincipalID(c.Request.Context())
		c.Status(200)
	})

	// Two identical requests resolve to the same principal; the guard holds
	// no per-request state.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)
		if w.Code != 200 {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if seen != "user-42" {
			t.Fatalf("expected principal user-42, got %q", seen)
		}
	}
}
