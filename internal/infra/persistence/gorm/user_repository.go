package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// GormUserRepository 是 UserRepository 接口的 GORM 实现
type GormUserRepository struct {
	db *gorm.DB // 依赖 GORM DB 连接
}

// NewGormUserRepository 创建 GormUserRepository 实例
// db *gorm.DB 通过依赖注入传入
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		// 早期失败比运行时 panic 更好
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// FindByEmail 实现根据邮箱查找账号
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := dbFrom(ctx, r.db).Where("email = ?", email).First(&account).Error
	if err != nil {
		// 检查是否是记录未找到错误
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 映射为定义的仓库层错误
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find account by email '%s': %w", email, err)
	}
	return &account, nil
}

// FindByID 实现根据账号 ID 查找账号
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	var account domain.Account
	err := dbFrom(ctx, r.db).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find account by id %d: %w", id, err)
	}
	return &account, nil
}

// ExistsByEmail 检查邮箱是否已被注册
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&domain.Account{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("gorm: count accounts by email '%s': %w", email, err)
	}
	return count > 0, nil
}

// Save 实现保存账号信息（创建或更新）
// GORM 的 Save 方法会根据主键是否为零值决定是 INSERT 还是 UPDATE。
func (r *GormUserRepository) Save(ctx context.Context, account *domain.Account) error {
	err := dbFrom(ctx, r.db).Save(account).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry // 映射为定义的仓库错误
		}
		return fmt.Errorf("gorm: save account (id: %d, email: %s): %w", account.ID, account.Email, err)
	}
	return nil
}

// Delete 实现删除账号记录
func (r *GormUserRepository) Delete(ctx context.Context, account *domain.Account) error {
	err := dbFrom(ctx, r.db).Delete(account).Error
	if err != nil {
		return fmt.Errorf("gorm: delete account (id: %d): %w", account.ID, err)
	}
	return nil
}

// FindAll 实现分页查询账号列表
func (r *GormUserRepository) FindAll(ctx context.Context, page, size int) ([]domain.Account, error) {
	var accounts []domain.Account
	offset := (page - 1) * size
	err := dbFrom(ctx, r.db).Order("id asc").Offset(offset).Limit(size).Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find accounts (page: %d, size: %d): %w", page, size, err)
	}
	return accounts, nil
}

// Count 返回账号总数
func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&domain.Account{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count accounts: %w", err)
	}
	return count, nil
}
