// Package handler exposes admin user management over HTTP.
package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	auditdomain "pagecraft/backend/internal/audit/domain"
	auditrepo "pagecraft/backend/internal/audit/repository"
	"pagecraft/backend/internal/platform/web"
	"pagecraft/backend/internal/user/domain"
	"pagecraft/backend/internal/user/repository"
)

// Handler serves the admin-only user endpoints. Route wiring puts these
// behind the admin middleware.
type Handler struct {
	users repository.Repository
	audit auditrepo.Repository
}

func New(users repository.Repository, audit auditrepo.Repository) *Handler {
	return &Handler{users: users, audit: audit}
}

type updateRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: string(u.Role), CreatedAt: u.CreatedAt}
}

// List returns all users.
func (h *Handler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		web.Error(c, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns a single user by id.
func (h *Handler) Get(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Error(c, err)
		return
	}
	if user == nil {
		web.Error(c, web.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, toResponse(user))
}

// Update changes a user's name or role.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Error(c, err)
		return
	}
	if user == nil {
		web.Error(c, web.ErrNotFound)
		return
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		role := domain.Role(req.Role)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be admin, editor, or client"})
			return
		}
		user.Role = role
	}
	if err := h.users.Update(c.Request.Context(), user); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(user))
}

type auditResponse struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	IP        string    `json:"ip"`
	Metadata  string    `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Audit returns a user's auth events, newest first. Paginated with limit
// (default 50, max 200) and offset query parameters.
func (h *Handler) Audit(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Error(c, err)
		return
	}
	if user == nil {
		web.Error(c, web.ErrNotFound)
		return
	}
	limit := parseQueryInt(c, "limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := parseQueryInt(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	entries, err := h.audit.ListByUser(c.Request.Context(), user.ID, int32(limit), int32(offset))
	if err != nil {
		web.Error(c, err)
		return
	}
	out := make([]auditResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func toAuditResponse(e *auditdomain.Entry) auditResponse {
	return auditResponse{ID: e.ID, Action: e.Action, IP: e.IP, Metadata: e.Metadata, CreatedAt: e.CreatedAt}
}

func parseQueryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
