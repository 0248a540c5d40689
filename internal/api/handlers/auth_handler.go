package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/careerlens/internal/models"
	"github.com/careerlens/careerlens/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *gin.Context) {
	const op = "AuthHandler.Login"

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, keyMessage, op, "Username and password are required.", err)
		return
	}
	setUsername(c, req.Username)

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, keyMessage, err, "Login failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	const op = "AuthHandler.Signup"

	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, keyMessage, op, "All fields are required.", err)
		return
	}
	setUsername(c, req.Username)

	if err := h.auth.Signup(c.Request.Context(), req); err != nil {
		writeError(c, keyMessage, err, "Signup failed. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Account created successfully. You can now log in."})
}

func (h *AuthHandler) Google(c *gin.Context) {
	const op = "AuthHandler.Google"

	var req models.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, keyMessage, op, "Missing Google credential.", err)
		return
	}

	u, err := h.auth.LoginWithOAuthToken(c.Request.Context(), req.Credential)
	if err != nil {
		writeError(c, keyMessage, err, "Google sign-in failed.")
		return
	}
	setUsername(c, u.Username)
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}
