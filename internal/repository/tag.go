package repository

import (
	"context"

	"github.com/hongik-programming-study/backend/internal/domain"
)

// TagRepository 定义了标签及帖子-标签连接表的存储操作。
// 连接表由这里显式维护，不使用 ORM 的 many2many 关联。
type TagRepository interface {
	// FindByName 根据名称查找标签。
	// 如果标签不存在，返回 ErrTagNotFound。
	FindByName(ctx context.Context, name string) (*domain.Tag, error)

	// Save 创建标签。违反名称唯一约束时返回 ErrDuplicateEntry。
	Save(ctx context.Context, tag *domain.Tag) error

	// FindByPostID 返回帖子当前关联的标签集合。
	FindByPostID(ctx context.Context, postID uint) ([]domain.Tag, error)

	// ReplacePostTags 用给定的标签 ID 集合整体替换帖子的标签连接。
	ReplacePostTags(ctx context.Context, postID uint, tagIDs []uint) error

	// ClearPostTags 删除帖子的全部标签连接 (帖子删除时的显式步骤)。
	// 只删连接行，标签本身保留给其他帖子。
	ClearPostTags(ctx context.Context, postID uint) error

	// CountPostsByTagID 返回仍引用某标签的帖子数量。
	CountPostsByTagID(ctx context.Context, tagID uint) (int64, error)

	// Delete 删除标签行。只应在标签不再被任何帖子引用时调用。
	Delete(ctx context.Context, tag *domain.Tag) error
}

// NotificationRepository 定义了站内通知的存储操作。
type NotificationRepository interface {
	// Save 保存通知。
	Save(ctx context.Context, notification *domain.Notification) error

	// FindByID 根据通知 ID 查找通知。
	// 如果通知不存在，返回 ErrNotificationNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Notification, error)

	// FindByAccountID 按创建时间倒序返回账号的通知列表。
	FindByAccountID(ctx context.Context, accountID uint) ([]domain.Notification, error)

	// DeleteByPostID 删除帖子关联的全部通知 (帖子删除时的显式级联)。
	DeleteByPostID(ctx context.Context, postID uint) error
}
