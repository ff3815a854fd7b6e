package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockroom/stockroom/internal/model"
)

// Token verification errors.
var (
	ErrTokenInvalid    = errors.New("token is invalid or expired")
	ErrMissingIdentity = errors.New("token is missing user identity")
)

// Claims is the signed claim set embedded in every issued token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// IssueToken mints an HS256-signed token for the given user.
// The token carries the user's store-assigned ID and email and
// expires ttl after issuance.
func IssueToken(secret, issuer string, user *model.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken validates a raw token string and extracts its claims.
// Signature, expiry, and issuer are all checked; a structurally valid
// token without a user ID claim is rejected too. All failures are
// normalized so callers don't need to inspect low-level JWT errors.
func VerifyToken(secret, issuer, raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if claims.UserID == "" {
		return nil, ErrMissingIdentity
	}

	return claims, nil
}
