package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendease/internal/auth"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	FullName string `json:"fullName"`
}

// Login verifies credentials and issues a 24h session token. Username
// matching is case-insensitive; a missing user and a wrong password are
// indistinguishable to the caller.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	user, err := h.users.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		internalError(c, err)
		return
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.Issue(user.ID, user.Username, user.Role, user.FullName,
		h.token.Issuer, h.token.SigningKey, h.token.TTL)
	if err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": loginUser{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
			FullName: user.FullName,
		},
	})
}
