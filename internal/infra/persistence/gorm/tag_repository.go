package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// GormTagRepository 是 TagRepository 接口的 GORM 实现。
// post_tags 连接表在这里显式维护。
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository 创建 GormTagRepository 实例
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	if db == nil {
		panic("database connection cannot be nil for GormTagRepository")
	}
	return &GormTagRepository{db: db}
}

// FindByName 根据名称查找标签
func (r *GormTagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	var tag domain.Tag
	err := dbFrom(ctx, r.db).Where("name = ?", name).First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTagNotFound
		}
		return nil, fmt.Errorf("gorm: find tag by name '%s': %w", name, err)
	}
	return &tag, nil
}

// Save 创建标签
func (r *GormTagRepository) Save(ctx context.Context, tag *domain.Tag) error {
	err := dbFrom(ctx, r.db).Create(tag).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save tag (name: %s): %w", tag.Name, err)
	}
	return nil
}

// FindByPostID 通过连接表返回帖子当前关联的标签集合
func (r *GormTagRepository) FindByPostID(ctx context.Context, postID uint) ([]domain.Tag, error) {
	var tags []domain.Tag
	err := dbFrom(ctx, r.db).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name asc").Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find tags by post id %d: %w", postID, err)
	}
	return tags, nil
}

// ReplacePostTags 用给定的标签 ID 集合整体替换帖子的连接行。
// 先清后插，两步在调用方的事务里原子完成。
func (r *GormTagRepository) ReplacePostTags(ctx context.Context, postID uint, tagIDs []uint) error {
	db := dbFrom(ctx, r.db)
	if err := db.Where("post_id = ?", postID).Delete(&domain.PostTag{}).Error; err != nil {
		return fmt.Errorf("gorm: clear post tags (post: %d): %w", postID, err)
	}
	if len(tagIDs) == 0 {
		return nil
	}
	links := make([]domain.PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		links = append(links, domain.PostTag{PostID: postID, TagID: tagID})
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("gorm: link post tags (post: %d): %w", postID, err)
	}
	return nil
}

// ClearPostTags 删除帖子的全部连接行，标签行保留
func (r *GormTagRepository) ClearPostTags(ctx context.Context, postID uint) error {
	err := dbFrom(ctx, r.db).Where("post_id = ?", postID).Delete(&domain.PostTag{}).Error
	if err != nil {
		return fmt.Errorf("gorm: clear post tags (post: %d): %w", postID, err)
	}
	return nil
}

// CountPostsByTagID 返回仍引用某标签的帖子数量
func (r *GormTagRepository) CountPostsByTagID(ctx context.Context, tagID uint) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&domain.PostTag{}).Where("tag_id = ?", tagID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count posts by tag id %d: %w", tagID, err)
	}
	return count, nil
}

// Delete 删除标签行
func (r *GormTagRepository) Delete(ctx context.Context, tag *domain.Tag) error {
	err := dbFrom(ctx, r.db).Delete(tag).Error
	if err != nil {
		return fmt.Errorf("gorm: delete tag (id: %d): %w", tag.ID, err)
	}
	return nil
}

// GormNotificationRepository 是 NotificationRepository 接口的 GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository 创建 GormNotificationRepository 实例
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	if db == nil {
		panic("database connection cannot be nil for GormNotificationRepository")
	}
	return &GormNotificationRepository{db: db}
}

// Save 保存通知
func (r *GormNotificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	err := dbFrom(ctx, r.db).Save(notification).Error
	if err != nil {
		return fmt.Errorf("gorm: save notification (account: %d, post: %d): %w",
			notification.AccountID, notification.PostID, err)
	}
	return nil
}

// FindByID 根据通知 ID 查找通知
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uint) (*domain.Notification, error) {
	var notification domain.Notification
	err := dbFrom(ctx, r.db).First(&notification, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("gorm: find notification by id %d: %w", id, err)
	}
	return &notification, nil
}

// FindByAccountID 按创建时间倒序返回账号的通知列表
func (r *GormNotificationRepository) FindByAccountID(ctx context.Context, accountID uint) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := dbFrom(ctx, r.db).Where("account_id = ?", accountID).Order("id desc").Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find notifications by account id %d: %w", accountID, err)
	}
	return notifications, nil
}

// DeleteByPostID 删除帖子关联的全部通知（帖子删除时的显式级联路径）
func (r *GormNotificationRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	err := dbFrom(ctx, r.db).Where("post_id = ?", postID).Delete(&domain.Notification{}).Error
	if err != nil {
		return fmt.Errorf("gorm: delete notifications by post id %d: %w", postID, err)
	}
	return nil
}
