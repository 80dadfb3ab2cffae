// Package auth issues and validates the signed session tokens that establish
// caller identity. Tokens are stateless bearer credentials: validity is
// entirely determined by the HMAC signature and the embedded claims, there is
// no server-side session or revocation list.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered JWT claims with the user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
}

// TokenService signs and validates HS256 session tokens. The zero leeway in
// validation makes expiry exact: a token is rejected the moment it expires.
type TokenService struct {
	secretKey []byte
	issuer    string
	audience  string
	validity  time.Duration
}

// NewTokenService configures a service. The secret key is shared between the
// signer and every validator.
func NewTokenService(secretKey []byte, issuer, audience string, validity time.Duration) *TokenService {
	return &TokenService{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		validity:  validity,
	}
}

// Validity reports the configured token lifetime.
func (s *TokenService) Validity() time.Duration {
	return s.validity
}

// GenerateToken issues a signed token embedding the user identity, issuer,
// audience, issue time, and an expiry of now + validity.
func (s *TokenService) GenerateToken(userID, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
		UserID:   userID,
		Username: username,
	})

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetUserIDFromToken validates the token and returns the embedded user id.
// It fails closed: a bad signature, wrong signing method, wrong issuer or
// audience, an expired token, or a missing user id all yield ErrInvalidToken
// (ErrTokenExpired for the expiry case, which still matches ErrInvalidToken
// via errors.Is on the wrapped value at call sites that do not care).
func (s *TokenService) GetUserIDFromToken(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
