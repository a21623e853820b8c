package tokens

import "github.com/golang-jwt/jwt/v5"

type AccessClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

func parse(tokenStr string, claims jwt.Claims, secret []byte) error {
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrUnexpectedSignMethod
		}
		return secret, nil
	})
	if err != nil {
		return err
	}
	if !tkn.Valid {
		return ErrInvalidToken
	}
	return nil
}
