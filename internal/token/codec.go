package token

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/hkdf"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenType = errors.New("wrong token type")
)

// AccessClaims is the closed schema for short-lived access tokens. The type
// discriminator is checked on every decode so an access token can never pass
// as a refresh token or vice versa.
type AccessClaims struct {
	UserID    string `json:"id"`
	Role      string `json:"role"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// RefreshClaims is the closed schema for long-lived refresh tokens. It
// carries no role: the role is re-read from the user record on every refresh.
type RefreshClaims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies both token kinds. The two signing keys are derived
// from a single master secret via HKDF-SHA256 with distinct labels, so a
// token of one kind never validates against the other kind's key.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

type Option func(*Codec)

// WithClock overrides the time source, used by tests to pin expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

func NewCodec(masterSecret string, accessTTL time.Duration, refreshTTL time.Duration, opts ...Option) (*Codec, error) {
	if masterSecret == "" {
		return nil, errors.New("master secret is required")
	}

	accessSecret, err := deriveKey(masterSecret, "access-token")
	if err != nil {
		return nil, err
	}
	refreshSecret, err := deriveKey(masterSecret, "refresh-token")
	if err != nil {
		return nil, err
	}

	codec := &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(codec)
	}

	return codec, nil
}

func (c *Codec) IssueAccess(userID string, role string) (string, error) {
	now := c.now().UTC()
	claims := AccessClaims{
		UserID:    userID,
		Role:      role,
		TokenType: TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.accessTTL)),
		},
	}

	return c.sign(claims, c.accessSecret)
}

func (c *Codec) IssueRefresh(userID string) (string, error) {
	now := c.now().UTC()
	claims := RefreshClaims{
		UserID:    userID,
		TokenType: TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.refreshTTL)),
		},
	}

	return c.sign(claims, c.refreshSecret)
}

func (c *Codec) VerifyAccess(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := c.parse(tokenString, claims, c.accessSecret); err != nil {
		return nil, err
	}

	// Discriminator check runs after signature validation so a validly
	// signed token of the wrong kind is reported as such, not as garbage.
	if claims.TokenType != TypeAccess {
		return nil, ErrWrongTokenType
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (c *Codec) VerifyRefresh(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := c.parse(tokenString, claims, c.refreshSecret); err != nil {
		return nil, err
	}

	if claims.TokenType != TypeRefresh {
		return nil, ErrWrongTokenType
	}
	if claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (c *Codec) AccessTTL() time.Duration {
	return c.accessTTL
}

func (c *Codec) RefreshTTL() time.Duration {
	return c.refreshTTL
}

func (c *Codec) sign(claims jwt.Claims, secret []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (c *Codec) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}
	if !parsed.Valid {
		return ErrInvalidToken
	}

	return nil
}

func deriveKey(masterSecret string, label string) ([]byte, error) {
	key := make([]byte, 32)
	reader := hkdf.New(sha256.New, []byte(masterSecret), nil, []byte(label))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", label, err)
	}
	return key, nil
}
