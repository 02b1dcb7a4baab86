package auth

import (
	"errors"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("токен недействителен")
	ErrExpiredToken = errors.New("срок действия токена истек")
	ErrRevokedToken = errors.New("токен отозван")
)

type UserClaims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

type TokenManager interface {
	GenerateToken(userID int64, duration time.Duration) (string, error)
	ValidateToken(token string) (*UserClaims, error)
	Revoke(claims *UserClaims)
}

// JWTManager выпускает токены HS256 с уникальным jti. Отозванные токены
// хранятся в памяти до истечения их срока действия.
type JWTManager struct {
	signingKey []byte
	now        func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewJWTManager(signingKey string) *JWTManager {
	return &JWTManager{
		signingKey: []byte(signingKey),
		now:        time.Now,
		revoked:    make(map[string]time.Time),
	}
}

func (m *JWTManager) GenerateToken(userID int64, duration time.Duration) (string, error) {
	now := m.now()

	payload := &UserClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	return token.SignedString(m.signingKey)
}

func (m *JWTManager) ValidateToken(tokenStr string) (*UserClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(
		tokenStr,
		&UserClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("неожиданный метод подписи")
			}

			return m.signingKey, nil
		},
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}

	if !claims.ExpiresAt.After(m.now()) {
		return nil, ErrExpiredToken
	}

	if m.IsRevoked(claims.ID) {
		return nil, ErrRevokedToken
	}

	return claims, nil
}

// Revoke отзывает токен до окончания срока его действия
func (m *JWTManager) Revoke(claims *UserClaims) {
	if claims == nil || claims.ID == "" {
		return
	}

	expiresAt := m.now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.revoked[claims.ID] = expiresAt
	m.pruneLocked()
}

func (m *JWTManager) IsRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.revoked[id]

	return ok
}

func (m *JWTManager) pruneLocked() {
	now := m.now()
	for id, expiresAt := range m.revoked {
		if expiresAt.Before(now) {
			delete(m.revoked, id)
		}
	}
}
