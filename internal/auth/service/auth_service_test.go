package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"pagecraft/backend/internal/security"
	userdomain "pagecraft/backend/internal/user/domain"
)

type memUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*userdomain.User
	byEmail map[string]*userdomain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    make(map[string]*userdomain.User),
		byEmail: make(map[string]*userdomain.User),
	}
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byEmail[email], nil
}

func (r *memUserRepo) Create(ctx context.Context, u *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[u.Email]; exists {
		// Same error shape the unique constraint produces in Postgres.
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}
	u2 := *u
	r.byID[u.ID] = &u2
	r.byEmail[u.Email] = &u2
	return nil
}

func (r *memUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func newTestService(t *testing.T) (*AuthService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	hasher := security.NewHasher(4) // min cost keeps tests fast
	tokens := security.NewTokenProvider([]byte("0123456789abcdef0123456789abcdef"), "pagecraft-test", time.Hour, security.NewMemoryRevocationStore())
	return NewAuthService(users, hasher, tokens, nil), users
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Alice@Example.com", "pw123", "Alice", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q, want normalized alice@example.com", user.Email)
	}
	if user.Role != userdomain.RoleClient {
		t.Errorf("role = %q, want default client", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "pw123" {
		t.Error("password should be stored hashed")
	}
	if token == "" {
		t.Fatal("Register should issue a session token")
	}

	resolved, err := svc.ResolveIdentity(ctx, token)
	if err != nil {
		t.Fatalf("ResolveIdentity: %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("resolved ID = %q, want %q", resolved.ID, user.ID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@example.com", "pw123", "Alice", ""); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, err := svc.Register(ctx, "alice@example.com", "other-pw", "Alice Again", "")
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second Register: err = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	const n = 8
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.Register(ctx, "race@example.com", "pw123", "Racer", "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrEmailTaken):
			conflict++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("successful registrations = %d, want exactly 1", ok)
	}
	if conflict != n-1 {
		t.Errorf("conflicts = %d, want %d", conflict, n-1)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		email    string
		password string
		role     userdomain.Role
	}{
		{"empty email", "", "pw123", ""},
		{"bad email", "not-an-email", "pw123", ""},
		{"empty password", "alice@example.com", "", ""},
		{"unknown role", "alice@example.com", "pw123", "superuser"},
		{"admin role rejected", "alice@example.com", "pw123", userdomain.RoleAdmin},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Register(ctx, tc.email, tc.password, "Alice", tc.role); err == nil {
				t.Error("Register should fail")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "alice@example.com", "pw123", "Alice", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, token, err := svc.Login(ctx, "alice@example.com", "pw123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %q", user.Email)
	}
	if token == "" {
		t.Fatal("Login should issue a session token")
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "pw123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, token, err := svc.Register(ctx, "alice@example.com", "pw123", "Alice", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.ResolveIdentity(ctx, token); err != nil {
		t.Fatalf("ResolveIdentity before logout: %v", err)
	}

	svc.Logout(ctx, token)
	if _, err := svc.ResolveIdentity(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("ResolveIdentity after logout: err = %v, want ErrUnauthenticated", err)
	}

	// Logging out again, or with garbage, must not panic or error.
	svc.Logout(ctx, token)
	svc.Logout(ctx, "not-a-token")
}

func TestChangePassword(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	user, _, err := svc.Register(ctx, "alice@example.com", "pw123", "Alice", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(ctx, user, "wrong", "newpw456"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong old password: err = %v, want ErrInvalidCredentials", err)
	}

	if err := svc.ChangePassword(ctx, user, "pw123", "newpw456"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	stored, _ := users.GetByID(ctx, user.ID)
	if stored.PasswordHash == user.PasswordHash {
		t.Error("stored hash should change")
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "newpw456"); err != nil {
		t.Errorf("Login with new password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "alice@example.com", "pw123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login with old password: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestResolveIdentity_DeletedUser(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "alice@example.com", "pw123", "Alice", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	users.mu.Lock()
	delete(users.byID, user.ID)
	delete(users.byEmail, user.Email)
	users.mu.Unlock()

	if _, err := svc.ResolveIdentity(ctx, token); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("ResolveIdentity for deleted user: err = %v, want ErrUnauthenticated", err)
	}
}

func TestResolveIdentity_InvalidToken(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ResolveIdentity(ctx, token); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("ResolveIdentity(%q): err = %v, want ErrUnauthenticated", token, err)
		}
	}
}
