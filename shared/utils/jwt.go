package utils

import (
	"fmt"
	"strings"
	"time"

	"seller-marketplace/shared/config"

	"github.com/golang-jwt/jwt/v5"
)

// Claims identify the caller by email only. Roles are looked up per request.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func GenerateJWT(email string, cfg *config.Config) (string, error) {
	now := time.Now()
	expirationTime := now.Add(time.Duration(cfg.JWT.ExpiryHours) * time.Hour)

	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWT.Secret))
}

func ValidateJWT(tokenString string, cfg *config.Config) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("token has no email claim")
	}

	return claims, nil
}

// ExtractTokenFromHeader returns the second word of the header, so
// "Bearer <token>" yields the token whatever the scheme is spelled as.
func ExtractTokenFromHeader(authHeader string) string {
	fields := strings.Fields(authHeader)
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}
