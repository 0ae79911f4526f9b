// Package handler exposes the auth flows over HTTP.
package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pagecraft/backend/internal/auth/service"
	"pagecraft/backend/internal/platform/web"
	"pagecraft/backend/internal/server/middleware"
	userdomain "pagecraft/backend/internal/user/domain"
)

// Handler serves registration, login, logout, the current-identity
// endpoint, and password changes.
type Handler struct {
	auth         *service.AuthService
	cookieTTL    time.Duration
	cookieSecure bool
}

func New(auth *service.AuthService, cookieTTL time.Duration, cookieSecure bool) *Handler {
	return &Handler{auth: auth, cookieTTL: cookieTTL, cookieSecure: cookieSecure}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role)}
}

// Register creates an account and starts a session in one step. Accounts
// always start as clients; only an admin can raise a role afterwards, via
// the user update endpoint.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	user, token, err := h.auth.Register(c.Request.Context(), req.Email, req.Password, req.Name, userdomain.RoleClient)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			web.Error(c, err)
		} else {
			web.BadRequest(c, err)
		}
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"user": toUserResponse(user), "token": token})
}

// Login authenticates credentials and starts a session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		web.Error(c, err)
		return
	}
	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user), "token": token})
}

// Logout revokes the current session token and clears the cookie. It is
// idempotent.
func (h *Handler) Logout(c *gin.Context) {
	h.auth.Logout(c.Request.Context(), middleware.SessionToken(c))
	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the identity the session belongs to.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(middleware.CurrentUser(c)))
}

// ChangePassword replaces the caller's password after verifying the old one.
func (h *Handler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.auth.ChangePassword(c.Request.Context(), middleware.CurrentUser(c), req.OldPassword, req.NewPassword); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.cookieTTL.Seconds()), "/", "", h.cookieSecure, true)
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
}
