package domain

import (
	"errors"
	"time"
)

// Domain is a tenant-scoped content site owned by exactly one user. It is the
// unit of authorization scoping for everything nested beneath it (pages,
// sections, media, SEO).
type Domain struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

// Validate validates the domain for persistence.
func (d *Domain) Validate() error {
	if d.Name == "" {
		return errors.New("name is required")
	}
	if d.OwnerID == "" {
		return errors.New("owner is required")
	}
	return nil
}
