package repository

import (
	"context"

	"github.com/hongik-programming-study/backend/internal/domain"
)

// RefreshTokenRepository 定义了刷新令牌的存储操作。
// 每个账号最多只有一行记录，Key 即账号 ID。
type RefreshTokenRepository interface {
	// FindByKey 根据账号 ID 查找当前有效的刷新令牌。
	// 如果不存在，返回 ErrRefreshTokenNotFound。
	FindByKey(ctx context.Context, key uint) (*domain.RefreshToken, error)

	// Save 保存刷新令牌。同一 Key 已有记录时整行覆盖 (upsert)，
	// 保证单账号单活跃令牌的不变量。
	Save(ctx context.Context, token *domain.RefreshToken) error

	// DeleteByKey 删除账号的刷新令牌 (登出/注销)。
	// 记录不存在时不视为错误。
	DeleteByKey(ctx context.Context, key uint) error
}
