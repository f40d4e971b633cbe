package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"taskboard/internal/auth"
	dom "taskboard/internal/domain"
	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login, logout and me.
type AuthHandler struct {
	accounts      *service.AccountService
	tokenTTL      time.Duration
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, tokenTTL time.Duration, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokenTTL: tokenTTL, secureCookies: secureCookies, logger: logger}
}

// Signup godoc
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CredentialsRequest  true  "Credentials"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.accounts.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, dom.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "password too long"})
		case errors.Is(err, dom.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		case errors.Is(err, dom.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		default:
			serverError(c, h.logger, "signup failed", err)
		}
		return
	}
	auth.SetSessionCookie(c, token, h.tokenTTL, h.secureCookies)
	c.JSON(http.StatusCreated, dto.AccountResponse{Message: "Account created", Email: user.Email})
}

// Login godoc
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CredentialsRequest  true  "Credentials"
// @Success      200   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.CredentialsRequest
	if !bindJSON(c, &req) {
		return
	}
	user, token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, dom.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		case errors.Is(err, dom.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		default:
			serverError(c, h.logger, "login failed", err)
		}
		return
	}
	auth.SetSessionCookie(c, token, h.tokenTTL, h.secureCookies)
	c.JSON(http.StatusOK, dto.AccountResponse{Message: "Login successful", Email: user.Email})
}

// Me godoc
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.MeResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := auth.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, dto.MeResponse{ID: id.ID, Email: id.Email})
}

// Logout godoc
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.secureCookies)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}
