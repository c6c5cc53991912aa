package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lunai-users/internal/cache"
	"lunai-users/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrSessionsDisabled 表示未設定 JWT_SECRET，不簽發 session token
	ErrSessionsDisabled = errors.New("sessions disabled")
	// ErrInvalidSession 表示 token 格式、簽章、效期錯誤或已被撤銷
	ErrInvalidSession = errors.New("invalid session")
	// ErrRevocationUnavailable 表示沒有可用的 cache 來記錄撤銷
	ErrRevocationUnavailable = errors.New("session revocation unavailable")
)

const revokedKeyPrefix = "session:revoked:"

var (
	timeNow         = time.Now
	newTokenID      = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

// SessionClaims 是每個請求攜帶的 session 內容
type SessionClaims struct {
	UserID int        `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Sessions 簽發、驗證與撤銷 HS256 session token
type Sessions struct {
	secret []byte
	ttl    time.Duration
	cache  cache.Cache
}

// NewSessions 建立 Sessions；secret 為空時 Enabled 回傳 false，c 可為 nil
func NewSessions(secret string, ttl time.Duration, c cache.Cache) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, cache: c}
}

func (s *Sessions) Enabled() bool {
	return s != nil && len(s.secret) > 0
}

// Issue 為已驗證的使用者簽發 token，回傳 token 與到期時間
func (s *Sessions) Issue(user model.User) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrSessionsDisabled
	}

	now := timeNow()
	expires := now.Add(s.ttl)
	claims := SessionClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return token, expires, nil
}

// Verify 解析 token 並確認未被撤銷
func (s *Sessions) Verify(ctx context.Context, tokenString string) (*SessionClaims, error) {
	if !s.Enabled() {
		return nil, ErrSessionsDisabled
	}

	token, err := parseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	revoked, err := s.revoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, fmt.Errorf("%w: revoked", ErrInvalidSession)
	}
	return claims, nil
}

// Revoke 把 token ID 放進撤銷清單直到原本的到期時間
func (s *Sessions) Revoke(ctx context.Context, claims *SessionClaims) error {
	if s == nil || s.cache == nil {
		return ErrRevocationUnavailable
	}
	if claims.ExpiresAt == nil {
		return fmt.Errorf("%w: no expiry", ErrInvalidSession)
	}
	ttl := claims.ExpiresAt.Time.Sub(timeNow())
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *Sessions) revoked(ctx context.Context, id string) (bool, error) {
	if s.cache == nil || id == "" {
		return false, nil
	}
	err := s.cache.Get(ctx, revokedKeyPrefix+id).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return true, nil
}
