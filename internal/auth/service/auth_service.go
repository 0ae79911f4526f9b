package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"pagecraft/backend/internal/audit"
	"pagecraft/backend/internal/db"
	"pagecraft/backend/internal/security"
	userdomain "pagecraft/backend/internal/user/domain"
)

// Sentinel errors for the auth service; handlers map them to status codes.
// ErrInvalidCredentials deliberately covers both unknown email and wrong
// password so responses cannot be used to enumerate accounts.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// AuthService implements registration, email/password login, logout via
// token revocation, password change, and token-to-identity resolution.
type AuthService struct {
	users  UserRepo
	hasher *security.Hasher
	tokens *security.TokenProvider
	audit  audit.Recorder
}

// NewAuthService returns an AuthService with the given dependencies.
// recorder may be nil to disable auditing.
func NewAuthService(users UserRepo, hasher *security.Hasher, tokens *security.TokenProvider, recorder audit.Recorder) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		audit:  recorder,
	}
}

// Register creates a user with the given email, password, name, and role
// (default client), then issues a session token so the caller is logged in
// immediately. Registration can never produce an admin; the admin role is
// assigned by an existing admin through the user update path. A duplicate
// email fails with ErrEmailTaken; the race between concurrent registrations
// is settled by the database's unique constraint, not an application-level
// existence check.
func (s *AuthService) Register(ctx context.Context, email, password, name string, role userdomain.Role) (*userdomain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if role == userdomain.RoleAdmin {
		return nil, "", errors.New("admin accounts cannot be self-registered")
	}
	if err := validatePassword(password); err != nil {
		return nil, "", err
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      strings.TrimSpace(name),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.Validate(); err != nil {
		return nil, "", err
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = hashed
	if err := s.users.Create(ctx, user); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}
	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	s.record(ctx, user.ID, "register", "")
	return user, token, nil
}

// Login authenticates email/password and issues a session token. The stored
// hash is never returned; an unknown email and a wrong password both fail
// with ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*userdomain.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		s.record(ctx, "", "login_failure", "unknown email")
		return nil, "", ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		s.record(ctx, user.ID, "login_failure", "")
		return nil, "", ErrInvalidCredentials
	}
	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}
	s.record(ctx, user.ID, "login", "")
	return user, token, nil
}

// Logout revokes the presented token. Idempotent: an already-revoked,
// expired, or unparseable token is a no-op. A re-authenticating client
// receives a new token; the old one stays terminal.
func (s *AuthService) Logout(ctx context.Context, token string) {
	claims, err := s.tokens.Verify(token)
	s.tokens.Revoke(token)
	if err == nil {
		s.record(ctx, claims.Subject, "logout", "")
	}
}

// ChangePassword verifies oldPassword against the stored hash and replaces
// it with the hash of newPassword. Outstanding session tokens stay valid;
// revoking them on password change is a hardening option left to operators
// of shared deployments.
func (s *AuthService) ChangePassword(ctx context.Context, user *userdomain.User, oldPassword, newPassword string) error {
	if err := s.hasher.Compare(user.PasswordHash, []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := s.hasher.Hash([]byte(newPassword))
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}
	s.record(ctx, user.ID, "password_change", "")
	return nil
}

// ResolveIdentity verifies the session token and loads the user it names.
// Invalid, expired, or revoked tokens, and tokens whose subject no longer
// exists, all fail with ErrUnauthenticated.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*userdomain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) record(ctx context.Context, userID, action, metadata string) {
	if s.audit != nil {
		s.audit.Record(ctx, userID, action, metadata)
	}
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	const simpleEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	ok, _ := regexp.MatchString(simpleEmail, email)
	if !ok {
		return errors.New("invalid email format")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}
