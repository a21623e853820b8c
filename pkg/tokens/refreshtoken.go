package tokens

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func NewRefreshToken(secret []byte, userID, jti string, exp time.Time) (string, error) {
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func RefreshClaimsFromToken(tokenStr string, refreshSecret []byte) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := parse(tokenStr, &claims, refreshSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}
