// Package handler exposes media CRUD, file upload, and the public gallery
// over HTTP.
package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainsrepo "pagecraft/backend/internal/domains/repository"
	"pagecraft/backend/internal/media/domain"
	"pagecraft/backend/internal/media/repository"
	pagesrepo "pagecraft/backend/internal/pages/repository"
	"pagecraft/backend/internal/platform/ownership"
	"pagecraft/backend/internal/platform/web"
	sectionsrepo "pagecraft/backend/internal/sections/repository"
	"pagecraft/backend/internal/server/middleware"
)

// maxUploadBytes caps a single uploaded file at 20 MiB.
const maxUploadBytes = 20 << 20

// Handler serves media CRUD and uploads. Authorization climbs media to
// section to page to domain; the gallery endpoint is the one public read.
type Handler struct {
	media     repository.Repository
	sections  sectionsrepo.Repository
	pages     pagesrepo.Repository
	domains   domainsrepo.Repository
	uploadDir string
}

func New(media repository.Repository, sections sectionsrepo.Repository, pages pagesrepo.Repository, domains domainsrepo.Repository, uploadDir string) *Handler {
	return &Handler{media: media, sections: sections, pages: pages, domains: domains, uploadDir: uploadDir}
}

type createRequest struct {
	FileURL string `json:"file_url" binding:"required"`
	AltText string `json:"alt_text"`
	Type    string `json:"type"`
}

type updateRequest struct {
	AltText *string `json:"alt_text"`
	Type    *string `json:"type"`
}

type mediaResponse struct {
	ID         string `json:"id"`
	SectionID  string `json:"section_id,omitempty"`
	UploaderID string `json:"uploader_id"`
	FileURL    string `json:"file_url"`
	AltText    string `json:"alt_text"`
	Type       string `json:"type"`
}

func toResponse(m *domain.Media) mediaResponse {
	return mediaResponse{
		ID:         m.ID,
		SectionID:  m.SectionID,
		UploaderID: m.UploaderID,
		FileURL:    m.FileURL,
		AltText:    m.AltText,
		Type:       string(m.Type),
	}
}

// ListBySection returns the section's media.
func (h *Handler) ListBySection(c *gin.Context) {
	sectionID := c.Param("id")
	if !h.requireSection(c, sectionID) {
		return
	}
	items, err := h.media.ListBySection(c.Request.Context(), sectionID)
	if err != nil {
		web.Error(c, err)
		return
	}
	out := make([]mediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

// Create attaches a media item with an external or pre-uploaded URL to the
// section in the route.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	sectionID := c.Param("id")
	if !h.requireSection(c, sectionID) {
		return
	}
	m := &domain.Media{
		ID:         uuid.NewString(),
		SectionID:  sectionID,
		UploaderID: middleware.CurrentUser(c).ID,
		FileURL:    req.FileURL,
		AltText:    req.AltText,
		Type:       domain.Type(req.Type),
	}
	if err := m.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.media.Create(c.Request.Context(), m); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(m))
}

// Upload accepts a multipart file, stores it under the uploads dir with a
// generated name, and records a media row pointing at the served URL. The
// optional section_id field attaches it immediately.
func (h *Handler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large"})
		return
	}

	sectionID := c.PostForm("section_id")
	if sectionID != "" && !h.requireSection(c, sectionID) {
		return
	}

	// The stored name is generated, never taken from the client, so path
	// traversal in the original filename cannot escape the uploads dir.
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		web.Error(c, fmt.Errorf("save upload: %w", err))
		return
	}

	m := &domain.Media{
		ID:         uuid.NewString(),
		SectionID:  sectionID,
		UploaderID: middleware.CurrentUser(c).ID,
		FileURL:    "/uploads/" + name,
		AltText:    c.PostForm("alt_text"),
		Type:       domain.Type(c.DefaultPostForm("type", string(domain.TypeImage))),
	}
	if err := m.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.media.Create(c.Request.Context(), m); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(m))
}

// Mine returns every media item the caller has uploaded, attached or not.
func (h *Handler) Mine(c *gin.Context) {
	items, err := h.media.ListByUploader(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		web.Error(c, err)
		return
	}
	out := make([]mediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

// Get returns one media item.
func (h *Handler) Get(c *gin.Context) {
	m, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toResponse(m))
}

// Update changes a media item's alt text or type.
func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		web.BadRequest(c, err)
		return
	}
	m, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	if req.AltText != nil {
		m.AltText = *req.AltText
	}
	if req.Type != nil {
		m.Type = domain.Type(*req.Type)
	}
	if err := m.Validate(); err != nil {
		web.BadRequest(c, err)
		return
	}
	if err := h.media.Update(c.Request.Context(), m); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(m))
}

// Delete removes a media row. The file on disk is left for a cleanup job.
func (h *Handler) Delete(c *gin.Context) {
	m, ok := h.resolveOwned(c)
	if !ok {
		return
	}
	if err := h.media.Delete(c.Request.Context(), m.ID); err != nil {
		web.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "media deleted"})
}

// Gallery returns a domain's image media for public rendering. No session
// is required.
func (h *Handler) Gallery(c *gin.Context) {
	domainID := c.Param("domain")
	d, err := h.domains.GetByID(c.Request.Context(), domainID)
	if err != nil {
		web.Error(c, err)
		return
	}
	if d == nil {
		web.Error(c, web.ErrNotFound)
		return
	}
	items, err := h.media.ListImagesByDomain(c.Request.Context(), domainID)
	if err != nil {
		web.Error(c, err)
		return
	}
	out := make([]mediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, toResponse(m))
	}
	c.JSON(http.StatusOK, out)
}

// requireSection checks that the section exists and the caller owns the
// domain it sits under.
func (h *Handler) requireSection(c *gin.Context, sectionID string) bool {
	s, err := h.sections.GetByID(c.Request.Context(), sectionID)
	if err != nil {
		web.Error(c, err)
		return false
	}
	if s == nil {
		web.Error(c, web.ErrNotFound)
		return false
	}
	p, err := h.pages.GetByID(c.Request.Context(), s.PageID)
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

// resolveOwned loads the media item from the :id param and authorizes it.
// An unattached item is owned by its uploader.
func (h *Handler) resolveOwned(c *gin.Context) (*domain.Media, bool) {
	m, err := h.media.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		web.Error(c, err)
		return nil, false
	}
	if m == nil {
		web.Error(c, web.ErrNotFound)
		return nil, false
	}
	if m.SectionID == "" {
		user := middleware.CurrentUser(c)
		if !user.IsAdmin() && m.UploaderID != user.ID {
			web.Error(c, ownership.ErrForbidden)
			return nil, false
		}
		return m, true
	}
	if !h.requireSection(c, m.SectionID) {
		return nil, false
	}
	return m, true
}
