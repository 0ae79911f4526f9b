// Package handler exposes page CRUD over HTTP.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainsrepo "pagecraft/backend/internal/domains/repository"
	"pagecraft/backend/internal/pages/domain"
	"pagecraft/backend/internal/pages/repository"
	"pagecraft/backend/internal/platform/ownership"
	"pagecraft/backend/internal/platform/web"
	"pagecraft/backend/internal/server/middleware"
)

// Handler serves page CRUD. Authorization resolves the owning domain for
// every operation, so a page id outside the caller's domains behaves the
// same as one that does not exist at all until ownership is checked.
type Handler struct {
	pages   repository.Repository
	domains domainsrepo.Repository
}

func New(pages repository.Repository, domains domainsrepo.Repository) *Handler {
	return &Handler{pages: pages, domains: domains}
}

type createRequest struct {
	Title         string `json:"title" binding:"required"`
	Slug          string `json:"slug" binding:"required"`
	Content       string `json:"content"`
	CoverImageURL string `json:"cover_image_url"`
	Hierarchy     int    `json:"hierarchy"`
}

type updateRequest struct {
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Content       *string `json:"content"`
	CoverImageURL *string `json:"cover_image_url"`
	Hierarchy     *int    `json:"hierarchy"`
}

type pageResponse struct {
	ID            string    `json:"id"`
	DomainID      string    `json:"domain_id"`
	AuthorID      string    `json:"author_id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	CoverImageURL string    `json:"cover_image_url"`
	Hierarchy     int       `json:"hierarchy"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type summaryResponse struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Hierarchy    int    `json:"hierarchy"`
	SectionCount int    `json:"section_count"`
}

func toResponse(p *domain.Page) pageResponse {
	return pageResponse{
		ID:            p.ID,
		DomainID:      p.DomainID,
		AuthorID:      p.AuthorID,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		CoverImageURL: p.CoverImageURL,
		Hierarchy:     p.Hierarchy,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ListByDomain returns the domain's pages ordered by hierarchy, each with
// its section count.
func (h *Handler) ListByDomain(c *gin.Context) {
	if !h.requireDomain(c, c.Param("id")) {
		return
	}
	summaries, err := h.pages.ListByDomain(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Error(c, err)
		return
	}
	out := make([]summaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, summaryResponse{ID: s.ID, Title: s.Title, Hierarchy: s.Hierarchy, SectionCount: s.SectionCount})
	}
	c.JSON(http.StatusOK, out)
}

// Create adds a page to the domain in the route.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	domainID := c.Param("id")
	if !h.requireDomain(c, domainID) {
		return
	}
	p := &domain.Page{
		ID:            uuid.NewString(),
		DomainID:      domainID,
		AuthorID:      middleware.CurrentUser(c).ID,
		Title:         req.Title,
		Slug:          req.Slug,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		Hierarchy:     req.Hierarchy,
		UpdatedAt:     time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.pages.Create(c.Request.Context(), p); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(p))
}

// Get returns one page.
func (h *Handler) Get(c *gin.Context) {
	p, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

// Update changes the provided page fields.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	p, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Slug != nil {
		p.Slug = *req.Slug
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.CoverImageURL != nil {
		p.CoverImageURL = *req.CoverImageURL
	}
	if req.Hierarchy != nil {
		p.Hierarchy = *req.Hierarchy
	}
	p.UpdatedAt = time.Now().UTC()
	if err := p.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.pages.Update(c.Request.Context(), p); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(p))
}

// Delete removes a page and its sections.
func (h *Handler) Delete(c *gin.Context) {
	p, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	if err := h.pages.Delete(c.Request.Context(), p.ID); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "page deleted"})
}

// requireDomain checks that the domain exists and the caller owns it,
// writing the error response when it does not hold.
func (h *Handler) requireDomain(c *gin.Context, domainID string) bool {
	d, err := h.domains.GetByID(c.Request.Context(), domainID)
	if err != nil {
		web.Error(c, err)
		return false
	}
	if d == nil {
		web.Error(c, web.ErrNotFound)
		return false
	}
	if err := ownership.RequireDomainOwner(middleware.CurrentUser(c), d); err != nil {
		web.Error(c, err)
		return false
	}
	return true
}

// resolveOwned loads the page from the :id param and enforces ownership of
// its domain.
func (h *Handler) resolveOwned(c *gin.Context) (*domain.Page, bool) {
	p, err := h.pages.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Error(c, err)
		return nil, false
	}
	if p == nil {
		web.Error(c, web.ErrNotFound)
		return nil, false
	}
	if !h.requireDomain(c, p.DomainID) {
		return nil, false
	}
	return p, true
}
