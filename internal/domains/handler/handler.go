// Package handler exposes domain CRUD over HTTP.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pagecraft/backend/internal/domains/domain"
	"pagecraft/backend/internal/domains/repository"
	"pagecraft/backend/internal/platform/ownership"
	"pagecraft/backend/internal/platform/web"
	"pagecraft/backend/internal/server/middleware"
)

// Handler serves domain CRUD. Every read and write on an existing domain is
// scoped to its owner; admins see and touch everything.
type Handler struct {
	domains repository.Repository
}

func New(domains repository.Repository) *Handler {
	return &Handler{domains: domains}
}

type createRequest struct {
	Name string `json:"name" binding:"required"`
}

type updateRequest struct {
	Name string `json:"name" binding:"required"`
}

type domainResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(d *domain.Domain) domainResponse {
	return domainResponse{ID: d.ID, Name: d.Name, OwnerID: d.OwnerID, CreatedAt: d.CreatedAt}
}

// List returns the caller's domains, or every domain for admins.
func (h *Handler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	var (
		list []*domain.Domain
		err  error
	)
	if user.IsAdmin() {
		list, err = h.domains.ListAll(c.Request.Context())
	} else {
		list, err = h.domains.ListByOwner(c.Request.Context(), user.ID)
	}
	if err != nil {
		web.Error(c, err)
		return
	}
	out := make([]domainResponse, 0, len(list))
	for _, d := range list {
		out = append(out, toResponse(d))
	}
	c.JSON(http.StatusOK, out)
}

// Create registers a new domain owned by the caller.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	d := &domain.Domain{
		ID:        uuid.NewString(),
		Name:      req.Name,
		OwnerID:   middleware.CurrentUser(c).ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := d.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.domains.Create(c.Request.Context(), d); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(d))
}

// Get returns one domain.
func (h *Handler) Get(c *gin.Context) {
	d, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(d))
}

// Update renames a domain.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	d, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	d.Name = req.Name
	if err := h.domains.Update(c.Request.Context(), d); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(d))
}

// Delete removes a domain and, through the schema's cascades, everything
// nested under it.
func (h *Handler) Delete(c *gin.Context) {
	d, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	if err := h.domains.Delete(c.Request.Context(), d.ID); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "domain deleted"})
}

// resolveOwned loads the domain from the :id param and enforces ownership.
// On failure it writes the error response and returns ok=false.
func (h *Handler) resolveOwned(c *gin.Context) (*domain.Domain, bool) {
	d, err := h.domains.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Error(c, err)
		return nil, false
	}
	if d == nil {
		web.Error(c, web.ErrNotFound)
		return nil, false
	}
	if err := ownership.RequireDomainOwner(middleware.CurrentUser(c), d); err != nil {
		web.Error(c, err)
		return nil, false
	}
	return d, true
}
