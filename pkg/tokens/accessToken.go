package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrUnexpectedSignMethod = errors.New("unexpected sign method")
	ErrInvalidToken         = errors.New("invalid token")
)

func NewAccessToken(secret []byte, userID, email, role string, exp time.Time) (string, error) {
	claims := AccessClaims{
		Role:  role,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func AccessClaimsFromToken(tokenStr string, accessSecret []byte) (*AccessClaims, error) {
	var claims AccessClaims
	if err := parse(tokenStr, &claims, accessSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}
