package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinSecretLength   = 32
	DefaultTokenTTL   = 24 * time.Hour
	DefaultIssuer     = "task-manager"
	DefaultBcryptCost = bcrypt.DefaultCost
)

type Config struct {
	Secret     []byte
	TokenTTL   time.Duration
	Issuer     string
	BcryptCost int
}

// Service hashes passwords and issues/verifies HS256 session tokens.
// It holds the signing secret; nothing else in the process needs it.
type Service struct {
	secret     []byte
	tokenTTL   time.Duration
	issuer     string
	bcryptCost int
	now        func() time.Time
}

func NewService(cfg Config) (*Service, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("signing secret must be at least %d bytes", MinSecretLength)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = DefaultBcryptCost
	}

	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &Service{
		secret:     secret,
		tokenTTL:   cfg.TokenTTL,
		issuer:     cfg.Issuer,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
	}, nil
}

// WithClock returns a copy of s that reads time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

func (s *Service) TokenTTL() time.Duration { return s.tokenTTL }

func (s *Service) HashPassword(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (s *Service) VerifyPassword(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// IssueToken signs a token for userID and returns it with its expiry.
func (s *Service) IssueToken(userID string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("issue token: empty subject")
	}

	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken returns the subject of a valid token. Every failure is
// domain.ErrTokenInvalid; expiry is additionally domain.ErrTokenExpired.
func (s *Service) VerifyToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}
