// Package services содержит доменные типы и ошибки сервисов токенов и паролей.
package services

import (
	"errors"
	"time"
)

// Ошибки выпуска и проверки токенов сессии.
var (
	ErrInvalidJWTToken    = errors.New("invalid JWT token")
	ErrExpiredJWTToken    = errors.New("JWT token has expired")
	ErrGeneratingJWTToken = errors.New("failed to generate JWT token")
)

// JWTConfig - параметры подписи токенов: HMAC ключ, срок жизни и издатель.
type JWTConfig struct {
	SecretKey []byte
	TokenTTL  time.Duration
	Issuer    string
}

// JWTClaims - данные сессии, зашитые в токен. Username нужен для логов и ответа /user.
type JWTClaims struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}
