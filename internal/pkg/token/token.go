package token

import (
	"fmt"
	"time"

	"github.com/docassembler/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

// Service JWT 签发与校验
type Service struct {
	Secret   []byte
	Issuer   string
	Duration time.Duration
}

// NewService 创建 Service 实例
func NewService(secret string, duration time.Duration) *Service {
	return &Service{
		Secret:   []byte(secret),
		Issuer:   "docassembler",
		Duration: duration,
	}
}

// Claims 令牌负载
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Sign 为用户签发令牌
func (s *Service) Sign(u *model.User) (string, time.Time, error) {
	exp := time.Now().Add(s.Duration)

	claims := Claims{
		UserID: u.ID,
		Email:  u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Issuer,
			Subject:   fmt.Sprintf("%d", u.ID),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Parse 校验令牌并返回负载
func (s *Service) Parse(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		// 只接受 HS256
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
