// Package jwt emite y valida los tokens HS256 con que la API identifica al usuario
// que registra cada movimiento.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoSecret = errors.New("jwt: secret vacío")

// Claims claims estándar más el usuario (queda en user_id de compras y ventas) y su rol.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // admin | bodeguero | vendedor
}

// Generate firma un token para userID con el rol dado, válido expMinutes minutos.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errNoSecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración. Solo se aceptan firmas HMAC.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", errNoSecret
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return "", "", err
	}
	if !token.Valid {
		return "", "", errors.New("jwt: token inválido")
	}
	if claims.UserID == "" {
		// tokens emitidos fuera de Generate pueden traer solo sub
		claims.UserID = claims.Subject
	}
	return claims.UserID, claims.Role, nil
}
