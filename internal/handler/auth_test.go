package handler_test

import (
	"net/http"
	"testing"

	"attendease/internal/auth"
	"attendease/internal/model"
)

func seededUser(t *testing.T, password string) *model.User {
	t.Helper()
	digest, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &model.User{
		ID:           1,
		Username:     "admin",
		PasswordHash: digest,
		FullName:     "System Admin",
		Role:         "admin",
	}
}

func TestLoginSuccess(t *testing.T) {
	f := newFixture(t)
	f.users.user = seededUser(t, "admin123")

	w := f.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "admin", "password": "admin123"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
			Role     string `json:"role"`
			FullName string `json:"fullName"`
		} `json:"user"`
	}
	decodeJSON(t, w, &resp)
	if resp.Token == "" {
		t.Fatal("no token in response")
	}
	if resp.User.Role != "admin" || resp.User.FullName != "System Admin" {
		t.Errorf("user = %+v", resp.User)
	}

	claims, err := auth.Parse(resp.Token, testKey, testIssuer)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.UserID != 1 || claims.Role != "admin" || claims.FullName != "System Admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	f := newFixture(t)
	f.users.user = seededUser(t, "admin123")

	w := f.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "admin", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
		Token string `json:"token"`
	}
	decodeJSON(t, w, &resp)
	if resp.Error != "Invalid credentials" {
		t.Errorf("error = %q, want Invalid credentials", resp.Error)
	}
	if resp.Token != "" {
		t.Error("token issued for bad credentials")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	f := newFixture(t)
	// users mock returns nil user: no account matches.
	w := f.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "ghost", "password": "whatever"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLoginMissingFields(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
