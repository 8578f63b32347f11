package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/docassembler/backend/internal/model"
	"github.com/docassembler/backend/internal/pkg/token"
	"github.com/gin-gonic/gin"
)

func setupAuthRouter(tokens *token.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/me", AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserID(c)})
	})
	return r
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	r := setupAuthRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthMiddlewareAcceptsBearerToken(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	r := setupAuthRouter(tokens)

	signed, _, err := tokens.Sign(&model.User{ID: 5, Email: "u@example.com"})
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareAcceptsCookie(t *testing.T) {
	tokens := token.NewService("secret", time.Hour)
	r := setupAuthRouter(tokens)

	signed, _, err := tokens.Sign(&model.User{ID: 5, Email: "u@example.com"})
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: signed})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
