package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"

	"github.com/mylists/mylists-server/internal/domain"
)

const (
	tokenIssuer   = "mylists-server"
	tokenAudience = "mylists-client"

	refreshTokenSize = 32
)

// AccessClaims are the claims carried by a v4.local access token.
type AccessClaims struct {
	UserID    string
	Username  string
	Role      domain.Role
	TokenID   string
	ExpiresAt time.Time
}

// TokenService issues and verifies PASETO access tokens and opaque refresh tokens.
type TokenService struct {
	symmetricKey         paseto.V4SymmetricKey
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

// NewTokenService creates a token service from a 32-byte symmetric key.
func NewTokenService(key []byte, accessDuration, refreshDuration time.Duration) (*TokenService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d bytes, got %d", keyLength, len(key))
	}

	symmetricKey, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	return &TokenService{
		symmetricKey:         symmetricKey,
		accessTokenDuration:  accessDuration,
		refreshTokenDuration: refreshDuration,
	}, nil
}

// GenerateAccessToken creates an encrypted access token for user.
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := time.Now()

	tokenID, err := randomToken(16)
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(user.ID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.accessTokenDuration))
	token.SetJti(tokenID)
	token.SetString("username", user.Username)
	token.SetString("role", string(user.Role))

	return token.V4Encrypt(s.symmetricKey, nil), nil
}

// VerifyAccessToken decrypts tokenString and checks issuer, audience and validity window.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(time.Now()))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims := &AccessClaims{}
	if claims.UserID, err = token.GetSubject(); err != nil {
		return nil, fmt.Errorf("parse subject: %w", err)
	}
	if claims.Username, err = token.GetString("username"); err != nil {
		return nil, fmt.Errorf("parse username: %w", err)
	}
	role, err := token.GetString("role")
	if err != nil {
		return nil, fmt.Errorf("parse role: %w", err)
	}
	claims.Role = domain.Role(role)
	if claims.TokenID, err = token.GetJti(); err != nil {
		return nil, fmt.Errorf("parse jti: %w", err)
	}
	if claims.ExpiresAt, err = token.GetExpiration(); err != nil {
		return nil, fmt.Errorf("parse expiration: %w", err)
	}

	return claims, nil
}

// GenerateRefreshToken creates a random opaque refresh token. Only its
// hash is stored server side.
func (s *TokenService) GenerateRefreshToken() (string, error) {
	token, err := randomToken(refreshTokenSize)
	if err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return token, nil
}

// HashRefreshToken returns the hex SHA-256 of a refresh token.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *TokenService) AccessTokenDuration() time.Duration {
	return s.accessTokenDuration
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (s *TokenService) RefreshTokenDuration() time.Duration {
	return s.refreshTokenDuration
}

func randomToken(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
