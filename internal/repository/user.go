package repository

import (
	"context"

	"github.com/hongik-programming-study/backend/internal/domain"
)

// UserRepository 定义了账号数据的存储和检索操作。
type UserRepository interface {
	// FindByEmail 根据邮箱查找账号。
	// 如果账号不存在，返回 ErrUserNotFound。
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)

	// FindByID 根据账号 ID 查找账号。
	// 如果账号不存在，返回 ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Account, error)

	// ExistsByEmail 检查邮箱是否已被注册。
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save 保存账号信息。
	// 如果账号已存在 (基于 ID)，则更新；否则创建新账号。
	// 违反邮箱唯一约束时返回 ErrDuplicateEntry。
	Save(ctx context.Context, account *domain.Account) error

	// Delete 删除账号记录。
	Delete(ctx context.Context, account *domain.Account) error

	// FindAll 分页查询账号列表 (page 从 1 开始)。
	FindAll(ctx context.Context, page, size int) ([]domain.Account, error)

	// Count 返回账号总数，用于分页响应。
	Count(ctx context.Context) (int64, error)
}
