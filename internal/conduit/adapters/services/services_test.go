package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"conduit/internal/conduit/domain/services"
)

const testSecret = "test-secret"

func TestBcrypt(t *testing.T) {
	ctx := context.Background()
	svc := NewBcrypt(bcrypt.MinCost)

	hash, err := svc.Hash(ctx, "Password1")
	require.NoError(t, err)
	assert.NotEqual(t, "Password1", hash)

	ok, err := svc.Verify(ctx, "Password1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Verify(ctx, "Password2", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	t.Run("пустой пароль", func(t *testing.T) {
		_, err := svc.Hash(ctx, "")
		assert.ErrorIs(t, err, services.ErrInvalidPassword)

		_, err = svc.Verify(ctx, "", hash)
		assert.ErrorIs(t, err, services.ErrInvalidPassword)
	})

	t.Run("поврежденный хэш", func(t *testing.T) {
		_, err := svc.Verify(ctx, "Password1", "not-a-hash")
		require.Error(t, err)
		assert.Contains(t, err.Error(), errCtxComparing)
	})

	t.Run("некорректная стоимость", func(t *testing.T) {
		assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).(*ServiceBcrypt).cost)
		assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(bcrypt.MaxCost+1).(*ServiceBcrypt).cost)
		assert.Equal(t, 12, NewBcrypt(12).(*ServiceBcrypt).cost)
	})
}

func newTestJWT(now time.Time) *ServiceJWT {
	s := NewJWT(testSecret, time.Hour, "conduit").(*ServiceJWT)
	s.now = func() time.Time { return now }
	return s
}

func TestJWTRoundTrip(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	s := newTestJWT(now)

	token, expiresAt, err := s.GenerateToken(ctx, "user-1", "jake")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := s.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jake", claims.Username)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
	assert.True(t, claims.IssuedAt.Equal(now))
}

func TestJWTValidateErrors(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Truncate(time.Second)
	s := newTestJWT(now)

	token, _, err := s.GenerateToken(ctx, "user-1", "jake")
	require.NoError(t, err)

	t.Run("истекший токен", func(t *testing.T) {
		later := newTestJWT(now.Add(2 * time.Hour))
		_, err := later.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, services.ErrExpiredJWTToken)
	})

	t.Run("чужая подпись", func(t *testing.T) {
		other := NewJWT("other-secret", time.Hour, "conduit")
		_, err := other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("другой издатель", func(t *testing.T) {
		other := NewJWT(testSecret, time.Hour, "someone-else")
		_, err := other.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		_, err := s.ValidateToken(ctx, "garbage")
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("неверный алгоритм", func(t *testing.T) {
		claims := domainToJWTClaims(services.JWTClaims{UserID: "user-1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}, "conduit")
		unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.ValidateToken(ctx, unsigned)
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})

	t.Run("пустой user_id", func(t *testing.T) {
		empty, _, err := s.GenerateToken(ctx, "", "ghost")
		require.NoError(t, err)

		_, err = s.ValidateToken(ctx, empty)
		assert.ErrorIs(t, err, services.ErrInvalidJWTToken)
	})
}

func TestJWTEmptySecret(t *testing.T) {
	s := NewJWT("", time.Hour, "conduit")
	_, _, err := s.GenerateToken(context.Background(), "user-1", "jake")
	assert.ErrorIs(t, err, services.ErrGeneratingJWTToken)
}

func TestServiceFactory(t *testing.T) {
	f := NewServiceFactory(testSecret, time.Hour, "conduit", bcrypt.MinCost)
	assert.NotNil(t, f.PasswordService())
	assert.NotNil(t, f.TokenService())
}
