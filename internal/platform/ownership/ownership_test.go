package ownership

import (
	"errors"
	"testing"

	domaindomain "pagecraft/backend/internal/domains/domain"
	userdomain "pagecraft/backend/internal/user/domain"
)

func TestRequireDomainOwner(t *testing.T) {
	alice := &userdomain.User{ID: "user-a", Role: userdomain.RoleEditor}
	bob := &userdomain.User{ID: "user-b", Role: userdomain.RoleClient}
	admin := &userdomain.User{ID: "user-admin", Role: userdomain.RoleAdmin}
	d1 := &domaindomain.Domain{ID: "dom-1", Name: "alice.example", OwnerID: "user-a"}
	d2 := &domaindomain.Domain{ID: "dom-2", Name: "bob.example", OwnerID: "user-b"}

	testCases := []struct {
		name    string
		user    *userdomain.User
		domain  *domaindomain.Domain
		wantErr bool
	}{
		{"owner allowed", alice, d1, false},
		{"other owner's domain forbidden", alice, d2, true},
		{"reverse direction forbidden", bob, d1, true},
		{"admin override", admin, d2, false},
		{"nil user forbidden", nil, d1, true},
		{"nil domain forbidden", alice, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireDomainOwner(tc.user, tc.domain)
			if tc.wantErr {
				if !errors.Is(err, ErrForbidden) {
					t.Errorf("err = %v, want ErrForbidden", err)
				}
			} else if err != nil {
				t.Errorf("err = %v, want nil", err)
			}
		})
	}
}
