// Package auth validates the shared admin credential server-side and issues
// signed bearer tokens for the back office. The credential itself never
// leaves the server after startup.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

// ErrInvalidCredentials is returned when the submitted password is wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidToken is returned when a bearer token fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Service verifies the admin credential and manages session tokens.
type Service struct {
	secret []byte
	salt   []byte
	digest []byte
	ttl    time.Duration
}

// NewService derives an Argon2id digest of the configured admin password and
// keeps only the digest in memory.
func NewService(adminPassword, secret string, ttl time.Duration) (*Service, error) {
	if adminPassword == "" {
		return nil, errors.New("admin password is not configured")
	}
	if secret == "" {
		return nil, errors.New("auth secret is not configured")
	}

	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	return &Service{
		secret: []byte(secret),
		salt:   salt,
		digest: hashPassword(adminPassword, salt),
		ttl:    ttl,
	}, nil
}

func hashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
}

// Login verifies the submitted password and returns a signed session token.
func (s *Service) Login(password string) (string, error) {
	candidate := hashPassword(password, s.salt)
	if subtle.ConstantTimeCompare(candidate, s.digest) != 1 {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify checks a session token's signature and expiry.
func (s *Service) Verify(token string) error {
	parsed, err := jwt.Parse(token,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		return ErrInvalidToken
	}
	return nil
}

// RequireAdmin is middleware rejecting requests without a valid bearer token.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || s.Verify(token) != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"unauthorized"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
