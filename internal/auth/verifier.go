package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier checks an opaque credential and returns the identity it was
// issued to. Token issuance happens outside this service; we only verify.
type Verifier interface {
	Verify(token string) (string, error)
}

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

var parseClaimsFn = jwt.ParseWithClaims

func (v *JWTVerifier) Verify(token string) (string, error) {
	parsed, err := parseClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return "", errors.New("token invalid")
	}
	return claims.UserID, nil
}
