package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"passportx/internal/config"
	"passportx/internal/domain"
)

// AuthService validates the shared secret callers present to the external API.
type AuthService interface {
	ValidateAppKey(token string) error
}

type authService struct {
	appKey     []byte
	appKeyHash []byte
}

// NewAuthService creates a new AuthService implementation. With no key
// configured every token is rejected.
func NewAuthService(cfg config.AuthConfig) AuthService {
	return &authService{
		appKey:     []byte(cfg.AppKey),
		appKeyHash: []byte(cfg.AppKeyHash),
	}
}

func (s *authService) ValidateAppKey(token string) error {
	if token == "" {
		return domain.ErrUnauthorized
	}
	if len(s.appKeyHash) > 0 {
		if err := bcrypt.CompareHashAndPassword(s.appKeyHash, []byte(token)); err != nil {
			return domain.ErrUnauthorized
		}
		return nil
	}
	if len(s.appKey) == 0 || subtle.ConstantTimeCompare(s.appKey, []byte(token)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}
