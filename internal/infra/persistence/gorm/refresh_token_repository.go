package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// GormRefreshTokenRepository 是 RefreshTokenRepository 接口的 GORM 实现
type GormRefreshTokenRepository struct {
	db *gorm.DB
}

// NewGormRefreshTokenRepository 创建 GormRefreshTokenRepository 实例
func NewGormRefreshTokenRepository(db *gorm.DB) *GormRefreshTokenRepository {
	if db == nil {
		panic("database connection cannot be nil for GormRefreshTokenRepository")
	}
	return &GormRefreshTokenRepository{db: db}
}

// FindByKey 根据账号 ID 查找当前有效的刷新令牌
func (r *GormRefreshTokenRepository) FindByKey(ctx context.Context, key uint) (*domain.RefreshToken, error) {
	var token domain.RefreshToken
	err := dbFrom(ctx, r.db).First(&token, "`key` = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRefreshTokenNotFound
		}
		return nil, fmt.Errorf("gorm: find refresh token by key %d: %w", key, err)
	}
	return &token, nil
}

// Save 保存刷新令牌。同一 Key 已有记录时整行覆盖 (ON DUPLICATE KEY UPDATE)，
// 这就是单账号单活跃令牌不变量的落点：重复登录是 last-writer-wins。
func (r *GormRefreshTokenRepository) Save(ctx context.Context, token *domain.RefreshToken) error {
	err := dbFrom(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "updated_at"}),
	}).Create(token).Error
	if err != nil {
		return fmt.Errorf("gorm: save refresh token (key: %d): %w", token.Key, err)
	}
	return nil
}

// DeleteByKey 删除账号的刷新令牌。记录不存在时静默成功。
func (r *GormRefreshTokenRepository) DeleteByKey(ctx context.Context, key uint) error {
	err := dbFrom(ctx, r.db).Delete(&domain.RefreshToken{}, "`key` = ?", key).Error
	if err != nil {
		return fmt.Errorf("gorm: delete refresh token (key: %d): %w", key, err)
	}
	return nil
}
