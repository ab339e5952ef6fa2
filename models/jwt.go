package models

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var JWT = struct {
	ACCESS_COOKIE_NAME  string
	REFRESH_COOKIE_NAME string
	ACCESS_SCOPE        string
	REFRESH_SCOPE       string
}{
	ACCESS_COOKIE_NAME:  "studio_access",
	REFRESH_COOKIE_NAME: "studio_refresh",
	ACCESS_SCOPE:        "authentication",
	REFRESH_SCOPE:       "refresh",
}

type JWTClaims struct {
	UserID            string `json:"userId"`
	Kind              string `json:"kind"`
	DeviceFingerprint string `json:"deviceFingerprint"`
	Scope             string `json:"scope"`
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for user with the given scope and expiry
func SignToken(user User, fingerprint, scope string, expiry time.Time, secret string) (string, error) {
	claims := JWTClaims{
		UserID:            user.UserID,
		Kind:              user.Kind,
		DeviceFingerprint: fingerprint,
		Scope:             scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("error signing %s token: %v", scope, err)
	}
	return signed, nil
}

// ValidateJWTToken parses tokenString and checks its signature and scope
func ValidateJWTToken(tokenString, secret, scope string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || claims.Scope != scope {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
