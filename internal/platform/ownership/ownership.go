// Package ownership enforces domain ownership scoping: a domain and every
// resource nested under it (pages, sections, media, SEO) may only be read or
// mutated by the domain's owner or an admin.
package ownership

import (
	"errors"

	domaindomain "pagecraft/backend/internal/domains/domain"
	userdomain "pagecraft/backend/internal/user/domain"
)

// ErrForbidden is returned when an authenticated caller is not authorized
// for the resource. Handlers map it to 403.
var ErrForbidden = errors.New("forbidden")

// RequireDomainOwner returns nil when user owns d or holds the admin role;
// ErrForbidden otherwise. Every lookup or mutation of a domain-nested
// resource must resolve the owning domain and pass it through this check
// before touching data.
func RequireDomainOwner(user *userdomain.User, d *domaindomain.Domain) error {
	if user == nil || d == nil {
		return ErrForbidden
	}
	if user.IsAdmin() {
		return nil
	}
	if d.OwnerID != user.ID {
		return ErrForbidden
	}
	return nil
}
