package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	sessionrepo "github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/repository/session"
)

// ErrInvalidPassword is returned when the admin password does not match.
var ErrInvalidPassword = errors.New("invalid password")

// Service is the auth gate: a single admin password grants a session token,
// and IsAuthenticated is the predicate consulted before admin actions.
type Service struct {
	repo         sessionrepo.Repository
	passwordHash []byte
	ttl          time.Duration
}

func New(repo sessionrepo.Repository, adminPassword string, ttl time.Duration) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{repo: repo, passwordHash: hash, ttl: ttl}, nil
}

// Login checks the password and issues a fresh session token.
func (s *Service) Login(ctx context.Context, password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidPassword
	}

	expiresAt := time.Now().Add(s.ttl)
	for i := 0; i < 5; i++ {
		token, err := randomToken()
		if err != nil {
			return "", time.Time{}, err
		}
		err = s.repo.Create(ctx, sessionrepo.Session{Token: token, ExpiresAt: expiresAt})
		if err == nil {
			return token, expiresAt, nil
		}
		if errors.Is(err, sessionrepo.ErrAlreadyExists) {
			continue
		}
		return "", time.Time{}, err
	}
	return "", time.Time{}, errors.New("token collision")
}

// IsAuthenticated reports whether the token names a live session. Expired
// sessions are deleted on sight.
func (s *Service) IsAuthenticated(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	sess, err := s.repo.Get(ctx, token)
	if err != nil {
		return false
	}
	if time.Now().After(sess.ExpiresAt) {
		_ = s.repo.Delete(ctx, token)
		return false
	}
	return true
}

// Logout ends the session; an unknown token is not an error.
func (s *Service) Logout(ctx context.Context, token string) {
	_ = s.repo.Delete(ctx, token)
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
