// Package auth authenticates admins and issues the signed session tokens
// carried in the admin_session cookie.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"complaintbox/backend/internal/metrics"
	"complaintbox/backend/internal/models"
	"complaintbox/backend/internal/storage"

	jwt "github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "admin_session"
	Issuer     = "complaintbox-service"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
)

// AdminStore is the slice of storage.Storage the auth service needs.
type AdminStore interface {
	FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	FindAdminByID(ctx context.Context, id uint) (*models.Admin, error)
}

// PasswordVerifier checks a password against its stored hash.
type PasswordVerifier interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// Claims are the JWT claims of an admin session. Subject is the admin id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	Admin     *models.Admin
	ExpiresAt time.Time
}

type Service struct {
	Storage AdminStore
	Hasher  PasswordVerifier
	Secret  []byte
	TTL     time.Duration
	now     func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewService(s AdminStore, h PasswordVerifier, secret string, ttl time.Duration) *Service {
	return &Service{
		Storage: s,
		Hasher:  h,
		Secret:  []byte(secret),
		TTL:     ttl,
		now:     time.Now,
	}
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	admin, err := s.Storage.FindAdminByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		// Spend the same bcrypt time as a real comparison.
		s.Hasher.Verify(password, s.timingHash())
		metrics.AdminLogins.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.Hasher.Verify(password, admin.PasswordHash) {
		metrics.AdminLogins.WithLabelValues("invalid").Inc()
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.IssueToken(admin)
	if err != nil {
		return nil, err
	}
	metrics.AdminLogins.WithLabelValues("success").Inc()
	return &Session{Token: token, Admin: admin, ExpiresAt: expiresAt}, nil
}

// IssueToken signs an HS256 session token for admin.
func (s *Service) IssueToken(admin *models.Admin) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.TTL)
	claims := Claims{
		Role: admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(admin.ID), 10),
			Issuer:    Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// ParseToken validates signature, issuer and expiry and returns the admin id.
func (s *Service) ParseToken(token string) (uint, *Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return 0, nil, ErrInvalidSession
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, nil, ErrInvalidSession
	}
	return uint(id), claims, nil
}

// Authenticate maps a session token back to a stored admin. Tokens of deleted
// admins are rejected.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	id, _, err := s.ParseToken(token)
	if err != nil {
		return nil, err
	}

	admin, err := s.Storage.FindAdminByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *Service) timingHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("complaintbox-timing-equaliser")
	})
	return s.dummyHash
}
