package service_test // 测试包

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongik-programming-study/backend/internal/service"
)

func TestTokenProvider_IssueAndValidate(t *testing.T) {
	// Arrange
	provider, err := service.NewTokenProvider("very-secret-key", 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err, "创建 TokenProvider 不应失败")

	// Act
	pair, refreshExpiry, err := provider.Issue("user@hongik.ac.kr", []string{"ROLE_USER"})

	// Assert
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken, "访问令牌和刷新令牌的有效期不同，内容不应相同")
	assert.WithinDuration(t, time.Now().Add(14*24*time.Hour), refreshExpiry, time.Minute)

	// 两个令牌都应通过验证，且主体一致
	for _, token := range []string{pair.AccessToken, pair.RefreshToken} {
		claims, err := provider.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "user@hongik.ac.kr", claims["sub"])
		assert.Equal(t, []string{"ROLE_USER"}, provider.Roles(claims))
	}

	subject, err := provider.Subject(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user@hongik.ac.kr", subject)
}

func TestTokenProvider_Issue_UniqueTokens(t *testing.T) {
	// Arrange: iat/exp 只有秒级精度，同一秒内对同一主体连续签发
	// 也必须得到不同的令牌，否则令牌重放和新令牌无法区分
	provider, err := service.NewTokenProvider("very-secret-key", 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)

	// Act: 背靠背签发两对令牌
	first, _, err := provider.Issue("user@hongik.ac.kr", []string{"ROLE_USER"})
	require.NoError(t, err)
	second, _, err := provider.Issue("user@hongik.ac.kr", []string{"ROLE_USER"})
	require.NoError(t, err)

	// Assert
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken, "两次签发的刷新令牌必须不同")
	assert.NotEqual(t, first.AccessToken, second.AccessToken, "两次签发的访问令牌必须不同")
}

func TestTokenProvider_Validate_Expired(t *testing.T) {
	// Arrange: 签发一个立刻过期的令牌
	provider, err := service.NewTokenProvider("very-secret-key", time.Nanosecond, time.Nanosecond)
	require.NoError(t, err)
	pair, _, err := provider.Issue("user@hongik.ac.kr", []string{"ROLE_USER"})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	// Act
	_, err = provider.Validate(pair.AccessToken)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrExpiredToken)
}

func TestTokenProvider_Validate_Malformed(t *testing.T) {
	provider, err := service.NewTokenProvider("very-secret-key", time.Minute, time.Hour)
	require.NoError(t, err)

	_, err = provider.Validate("this-is-not-a-jwt")

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrMalformedToken)
}

func TestTokenProvider_Validate_WrongSecret(t *testing.T) {
	// Arrange: 用别的密钥签发
	issuer, err := service.NewTokenProvider("issuer-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	verifier, err := service.NewTokenProvider("verifier-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	pair, _, err := issuer.Issue("user@hongik.ac.kr", nil)
	require.NoError(t, err)

	// Act
	_, err = verifier.Validate(pair.AccessToken)

	// Assert: 签名错误归为 ErrInvalidToken
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestNewTokenProvider_EmptySecret(t *testing.T) {
	_, err := service.NewTokenProvider("", time.Minute, time.Hour)
	require.Error(t, err, "空密钥必须被拒绝")
}
