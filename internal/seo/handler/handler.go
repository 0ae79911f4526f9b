// Package handler exposes a domain's SEO record over HTTP.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainsrepo "pagecraft/backend/internal/domains/repository"
	"pagecraft/backend/internal/platform/ownership"
	"pagecraft/backend/internal/platform/web"
	"pagecraft/backend/internal/seo/domain"
	"pagecraft/backend/internal/seo/repository"
	"pagecraft/backend/internal/server/middleware"
)

// Handler serves the per-domain SEO record. Each domain holds at most one
// record; Put creates or replaces it.
type Handler struct {
	seo     repository.Repository
	domains domainsrepo.Repository
}

func New(seo repository.Repository, domains domainsrepo.Repository) *Handler {
	return &Handler{seo: seo, domains: domains}
}

type putRequest struct {
	MetaTitle       string `json:"meta_title" binding:"required"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`
	OGImageURL      string `json:"og_image_url"`
}

type seoResponse struct {
	ID              string `json:"id"`
	DomainID        string `json:"domain_id"`
	MetaTitle       string `json:"meta_title"`
	MetaDescription string `json:"meta_description"`
	Keywords        string `json:"keywords"`
	OGImageURL      string `json:"og_image_url"`
}

func toResponse(r *domain.Record) seoResponse {
	return seoResponse{
		ID:              r.ID,
		DomainID:        r.DomainID,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
		Keywords:        r.Keywords,
		OGImageURL:      r.OGImageURL,
	}
}

// Get returns the domain's SEO record.
func (h *Handler) Get(c *gin.Context) {
	domainID := c.Param("id")
	if !h.requireDomain(c, domainID) {
		return
	}
	record, err := h.seo.GetByDomain(c.Request.Context(), domainID)
	if err != nil {
		web.Error(c, err)
		return
	}
	if record == nil {
		web.Error(c, web.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, toResponse(record))
}

// Put creates the domain's SEO record or replaces the existing one.
func (h *Handler) Put(c *gin.Context) {
	var req putRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	domainID := c.Param("id")
	if !h.requireDomain(c, domainID) {
		return
	}
	record := &domain.Record{
		ID:              uuid.NewString(),
		DomainID:        domainID,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		Keywords:        req.Keywords,
		OGImageURL:      req.OGImageURL,
	}
	if err := record.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.seo.Upsert(c.Request.Context(), record); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(record))
}

// Delete removes the domain's SEO record.
func (h *Handler) Delete(c *gin.Context) {
	domainID := c.Param("id")
	if !h.requireDomain(c, domainID) {
		return
	}
	if err := h.seo.Delete(c.Request.Context(), domainID); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "seo record deleted"})
}

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
