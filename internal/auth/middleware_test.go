package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	testKey    = "test-key"
	testIssuer = "attendease"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(testKey, testIssuer), func(c *gin.Context) {
		claims, _ := Principal(c)
		c.JSON(http.StatusOK, gin.H{"user": claims.Username})
	})
	r.POST("/admin", RequireAuth(testKey, testIssuer), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := newTestRouter(t)
	if w := doRequest(r, http.MethodGet, "/protected", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthBadToken(t *testing.T) {
	r := newTestRouter(t)
	if w := doRequest(r, http.MethodGet, "/protected", "garbage"); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	r := newTestRouter(t)
	token, err := Issue(1, "teacher", "teacher", "John Teacher", testIssuer, testKey, -time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if w := doRequest(r, http.MethodGet, "/protected", token); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	r := newTestRouter(t)
	token, err := Issue(1, "teacher", "teacher", "John Teacher", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	w := doRequest(r, http.MethodGet, "/protected", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}

func TestRequireAdmin(t *testing.T) {
	r := newTestRouter(t)

	teacherToken, err := Issue(1, "teacher", "teacher", "John Teacher", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if w := doRequest(r, http.MethodPost, "/admin", teacherToken); w.Code != http.StatusForbidden {
		t.Errorf("teacher status = %d, want 403", w.Code)
	}

	adminToken, err := Issue(2, "admin", "admin", "System Admin", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if w := doRequest(r, http.MethodPost, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}
