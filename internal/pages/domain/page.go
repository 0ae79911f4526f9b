package domain

import (
	"errors"
	"time"
)

// Page is a content page under a domain. Hierarchy orders pages in site
// navigation; Slug is unique across all domains.
type Page struct {
	ID            string
	DomainID      string
	AuthorID      string
	Title         string
	Slug          string
	Content       string
	CoverImageURL string
	Hierarchy     int
	UpdatedAt     time.Time
}

// Summary is the page listing row: the page plus its section count.
type Summary struct {
	ID           string
	Title        string
	Hierarchy    int
	SectionCount int
}

// Validate validates the page for persistence.
func (p *Page) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Slug == "" {
		return errors.New("slug is required")
	}
	if p.DomainID == "" {
		return errors.New("domain is required")
	}
	return nil
}
