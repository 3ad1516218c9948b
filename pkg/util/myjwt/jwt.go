package myjwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims 会话 cookie 的载荷，会话数据放在 sess claim 中
type SessionClaims struct {
	Session map[string]any `json:"sess"`
	jwt.RegisteredClaims
}

// SignSession 用 HS256 签发会话 token
func SignSession(session map[string]any, key string, lifetime time.Duration) (string, error) {
	if key == "" {
		return "", errors.New("session key is empty")
	}
	if session == nil {
		session = map[string]any{}
	}

	now := time.Now()
	claims := SessionClaims{
		Session: session,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(key))
}

// ParseSession 校验签名与有效期，返回会话数据
func ParseSession(tokenString string, key string) (map[string]any, error) {
	if key == "" {
		return nil, errors.New("session key is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(key), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.Session == nil {
		return map[string]any{}, nil
	}
	return claims.Session, nil
}
