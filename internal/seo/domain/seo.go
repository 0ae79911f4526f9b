package domain

import "errors"

// Record holds a domain's SEO metadata. One record per domain, enforced by a
// unique constraint on DomainID.
type Record struct {
	ID              string
	DomainID        string
	MetaTitle       string
	MetaDescription string
	Keywords        string
	OGImageURL      string
}

// Validate validates the record for persistence.
func (s *Record) Validate() error {
	if s.DomainID == "" {
		return errors.New("domain is required")
	}
	if s.MetaTitle == "" {
		return errors.New("meta title is required")
	}
	return nil
}
