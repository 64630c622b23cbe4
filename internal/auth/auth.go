// Package auth implements the identity provider contract the storefront
// depends on: email/password sign-in issuing bearer session tokens, token
// verification, an admin email allowlist, password reset, and the user
// registry behind the admin console.
package auth

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("account is not permitted to access admin")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

const minPasswordLen = 6

// Identity is a verified caller.
type Identity struct {
	Email string
}

// User is a registered account as shown in the admin console.
type User struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type userRecord struct {
	hash      []byte
	createdAt time.Time
}

// Service is an in-process identity provider. Sessions are HS256 bearer
// tokens; revocation is tracked by token ID so an allowlist violation can
// kill a session server-side.
type Service struct {
	mu         sync.RWMutex
	secret     []byte
	ttl        time.Duration
	adminEmail string
	users      map[string]userRecord
	revoked    map[string]struct{}
	resets     map[string]resetRecord
	now        func() time.Time
}

type resetRecord struct {
	email   string
	expires time.Time
}

// Config for the identity provider.
type Config struct {
	Secret     []byte
	TokenTTL   time.Duration
	AdminEmail string
	Now        func() time.Time
}

// New builds a Service. The allowlisted admin account is seeded with
// adminPassword so a fresh deployment is usable immediately.
func New(cfg Config, adminPassword string) (*Service, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Service{
		secret:     cfg.Secret,
		ttl:        cfg.TokenTTL,
		adminEmail: cfg.AdminEmail,
		users:      make(map[string]userRecord),
		revoked:    make(map[string]struct{}),
		resets:     make(map[string]resetRecord),
		now:        cfg.Now,
	}
	if cfg.AdminEmail != "" && adminPassword != "" {
		if err := s.CreateUser(cfg.AdminEmail, adminPassword); err != nil {
			return nil, fmt.Errorf("seed admin user: %w", err)
		}
	}
	return s, nil
}

// SignIn checks the credentials and issues a session token.
func (s *Service) SignIn(email, password string) (string, error) {
	s.mu.RLock()
	rec, ok := s.users[email]
	s.mu.RUnlock()
	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}
	s.mu.RLock()
	_, dead := s.revoked[claims.ID]
	s.mu.RUnlock()
	if dead {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Verify validates a session token and returns the caller's identity.
func (s *Service) Verify(token string) (Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Email: claims.Subject}, nil
}

// VerifyAdmin validates the token and checks the allowlist. A valid session
// for a non-allowlisted email is revoked on the spot so a borrowed token
// cannot be retried.
func (s *Service) VerifyAdmin(token string) (Identity, error) {
	claims, err := s.parse(token)
	if err != nil {
		return Identity{}, err
	}
	if s.adminEmail != "" && claims.Subject != s.adminEmail {
		s.revoke(claims.ID)
		return Identity{}, ErrForbidden
	}
	return Identity{Email: claims.Subject}, nil
}

// SignOut revokes the session token.
func (s *Service) SignOut(token string) {
	claims, err := s.parse(token)
	if err != nil {
		return
	}
	s.revoke(claims.ID)
}

func (s *Service) revoke(jti string) {
	s.mu.Lock()
	s.revoked[jti] = struct{}{}
	s.mu.Unlock()
}

// CreateUser registers an account with a bcrypt-hashed password.
func (s *Service) CreateUser(email, password string) error {
	if len(password) < minPasswordLen {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; ok {
		return ErrUserExists
	}
	s.users[email] = userRecord{hash: hash, createdAt: s.now().UTC()}
	return nil
}

// ListUsers returns registered accounts, oldest first.
func (s *Service) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for email, rec := range s.users {
		out = append(out, User{Email: email, CreatedAt: rec.createdAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Email < out[j].Email
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// DeleteUser removes an account. The allowlisted admin cannot be deleted.
func (s *Service) DeleteUser(email string) error {
	if email == s.adminEmail {
		return ErrForbidden
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, email)
	return nil
}

// RequestPasswordReset issues a one-time reset token for the account.
// Callers decide whether to reveal a missing account to the client.
func (s *Service) RequestPasswordReset(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[email]; !ok {
		return "", ErrUserNotFound
	}
	token := uuid.NewString()
	s.resets[token] = resetRecord{email: email, expires: s.now().UTC().Add(time.Hour)}
	return token, nil
}

// UpdatePassword consumes a reset token and sets the new password.
func (s *Service) UpdatePassword(resetToken, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.resets[resetToken]
	if !ok || s.now().UTC().After(rec.expires) {
		return ErrInvalidResetToken
	}
	delete(s.resets, resetToken)
	user, ok := s.users[rec.email]
	if !ok {
		return ErrUserNotFound
	}
	user.hash = hash
	s.users[rec.email] = user
	return nil
}
