// Package handler exposes section CRUD over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainsrepo "pagecraft/backend/internal/domains/repository"
	pagesrepo "pagecraft/backend/internal/pages/repository"
	"pagecraft/backend/internal/platform/ownership"
	"pagecraft/backend/internal/platform/web"
	"pagecraft/backend/internal/sections/domain"
	"pagecraft/backend/internal/sections/repository"
	"pagecraft/backend/internal/server/middleware"
)

// Handler serves section CRUD. Authorization climbs section to page to
// domain before touching anything.
type Handler struct {
	sections repository.Repository
	pages    pagesrepo.Repository
	domains  domainsrepo.Repository
}

func New(sections repository.Repository, pages pagesrepo.Repository, domains domainsrepo.Repository) *Handler {
	return &Handler{sections: sections, pages: pages, domains: domains}
}

type createRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

type updateRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Position *int    `json:"position"`
}

type sectionResponse struct {
	ID       string `json:"id"`
	PageID   string `json:"page_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Position int    `json:"position"`
}

func toResponse(s *domain.Section) sectionResponse {
	return sectionResponse{ID: s.ID, PageID: s.PageID, Title: s.Title, Content: s.Content, Position: s.Position}
}

// ListByPage returns the page's sections ordered by position.
func (h *Handler) ListByPage(c *gin.Context) {
	pageID := c.Param("id")
	if !h.requirePage(c, pageID) {
		return
	}
	sections, err := h.sections.ListByPage(c.Request.Context(), pageID)
	if err != nil {
		web.Error(c, err)
		return
	}
	out := make([]sectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, toResponse(s))
	}
	c.JSON(http.StatusOK, out)
}

// Create adds a section to the page in the route.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	pageID := c.Param("id")
	if !h.requirePage(c, pageID) {
		return
	}
	s := &domain.Section{
		ID:       uuid.NewString(),
		PageID:   pageID,
		Title:    req.Title,
		Content:  req.Content,
		Position: req.Position,
	}
	if err := s.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.sections.Create(c.Request.Context(), s); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(s))
}

// Get returns one section.
func (h *Handler) Get(c *gin.Context) {
	s, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(s))
}

// Update changes the provided section fields.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	s, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	if req.Title != nil {
		s.Title = *req.Title
	}
	if req.Content != nil {
		s.Content = *req.Content
	}
	if req.Position != nil {
		s.Position = *req.Position
	}
	if err := s.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.sections.Update(c.Request.Context(), s); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(s))
}

// Delete removes a section.
func (h *Handler) Delete(c *gin.Context) {
	s, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	if err := h.sections.Delete(c.Request.Context(), s.ID); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "section deleted"})
}

// requirePage checks that the page exists and the caller owns its domain.
func (h *Handler) requirePage(c *gin.Context, pageID string) bool {
	p, err := h.pages.GetByID(c.Request.Context(), pageID)
	if err != nil {
		web.Error(c, err)
		return false
	}
	if p == nil {
		web.Error(c, web.ErrNotFound)
		return false
	}
	d, err := h.domains.GetByID(c.Request.Context(), p.DomainID)
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

func (h *Handler) resolveOwned(c *gin.Context) (*domain.Section, bool) {
	s, err := h.sections.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Error(c, err)
		return nil, false
	}
	if s == nil {
		web.Error(c, web.ErrNotFound)
		return nil, false
	}
	if !h.requirePage(c, s.PageID) {
		return nil, false
	}
	return s, true
}
