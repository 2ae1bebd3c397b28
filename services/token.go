package services

import (
	"errors"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

func jwtSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change"
	}
	return []byte(secret)
}

// GenerateToken issues a signed access token carrying the user id and role.
func GenerateToken(userInfo UserInfo, ttlMinutes int) (string, error) {
	claims := jwt.MapClaims{
		"userinfo": map[string]interface{}{
			"userid": userInfo.UserId,
			"role":   userInfo.Role,
		},
		"exp": time.Now().Add(time.Duration(ttlMinutes) * time.Minute).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken verifies the signature and expiry and returns the embedded
// identity. Every protected route goes through this.
func ParseToken(tokenString string) (UserInfo, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return UserInfo{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return UserInfo{}, errors.New("invalid token")
	}

	userInfo, ok := claims["userinfo"].(map[string]interface{})
	if !ok {
		return UserInfo{}, errors.New("userinfo not found in token claims")
	}

	userID, okID := userInfo["userid"].(float64)
	if !okID {
		return UserInfo{}, errors.New("user ID not found in userinfo")
	}

	role, okRole := userInfo["role"].(float64)
	if !okRole {
		return UserInfo{}, errors.New("role not found in userinfo")
	}

	return UserInfo{UserId: uint(userID), Role: int(role)}, nil
}
