package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// TokenPair 是一次签发得到的访问令牌 + 刷新令牌。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenProvider 负责 JWT 的签发和验证。
// 它只读取进程级密钥，没有其他状态，可被并发安全地共享。
type TokenProvider struct {
	secret     []byte        // 签名密钥的字节形式
	accessTTL  time.Duration // 访问令牌有效期 (短)
	refreshTTL time.Duration // 刷新令牌有效期 (长)
}

// NewTokenProvider 创建 TokenProvider 实例。
// secret 应从安全配置中获取，不能为空。
func NewTokenProvider(secret string, accessTTL, refreshTTL time.Duration) (*TokenProvider, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if accessTTL <= 0 {
		accessTTL = 30 * time.Minute // 默认 30 分钟
	}
	if refreshTTL <= 0 {
		refreshTTL = 14 * 24 * time.Hour // 默认 14 天
	}
	return &TokenProvider{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// Issue 为指定主体 (邮箱) 和角色签发一对令牌。
// 返回刷新令牌的过期时间，供存储层持久化。
func (p *TokenProvider) Issue(email string, roles []string) (*TokenPair, time.Time, error) {
	now := time.Now()

	accessToken, err := p.sign(email, roles, now, now.Add(p.accessTTL))
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshExpiry := now.Add(p.refreshTTL)
	refreshToken, err := p.sign(email, roles, now, refreshExpiry)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, refreshExpiry, nil
}

// Validate 验证令牌的签名和有效期，返回其声明。
// 过期返回 ErrExpiredToken，结构损坏返回 ErrMalformedToken，
// 签名错误等其他情况返回 ErrInvalidToken。
func (p *TokenProvider) Validate(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) {
			if ve.Errors&jwt.ValidationErrorExpired != 0 {
				return nil, ErrExpiredToken
			}
			if ve.Errors&jwt.ValidationErrorMalformed != 0 {
				return nil, ErrMalformedToken
			}
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Subject 验证令牌并返回其主体 (邮箱)。
func (p *TokenProvider) Subject(tokenStr string) (string, error) {
	claims, err := p.Validate(tokenStr)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

// Roles 从声明中提取角色列表。声明缺失时返回 nil。
func (p *TokenProvider) Roles(claims jwt.MapClaims) []string {
	raw, ok := claims["roles"].([]interface{})
	if !ok {
		return nil
	}
	roles := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			roles = append(roles, s)
		}
	}
	return roles
}

// sign 生成一个 HS256 签名的令牌。
// jti 保证每次签发的令牌都不同：iat/exp 只有秒级精度，
// 同一秒内连续签发 (登录后立即刷新) 不能产生相同的令牌，
// 否则旧刷新令牌重放时和存储中的新令牌无法区分。
func (p *TokenProvider) sign(email string, roles []string, issuedAt, expiresAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   email,
		"roles": roles,
		"jti":   uuid.NewString(),
		"iat":   issuedAt.Unix(),
		"exp":   expiresAt.Unix(),
	})
	return token.SignedString(p.secret)
}
