package repository

import (
	"context"

	"github.com/hongik-programming-study/backend/internal/domain"
)

// PostRepository 定义了帖子数据的存储和检索操作。
type PostRepository interface {
	// FindByIDAndType 根据 (帖子 ID, 板块类别) 查找帖子。
	// 类别是寻址键的一部分：ID 存在但类别不匹配时同样返回 ErrPostNotFound。
	FindByIDAndType(ctx context.Context, id uint, boardType int) (*domain.Post, error)

	// FindAllByType 分页查询某板块下的帖子 (page 从 1 开始，按创建时间倒序)。
	FindAllByType(ctx context.Context, boardType int, page, size int) ([]domain.Post, error)

	// CountByType 返回某板块的帖子总数。
	CountByType(ctx context.Context, boardType int) (int64, error)

	// Save 保存帖子 (创建或更新)。
	Save(ctx context.Context, post *domain.Post) error

	// Delete 删除帖子本身。评论、通知、标签连接的清理是服务层
	// 在同一事务内的显式步骤，不依赖数据库级联。
	Delete(ctx context.Context, post *domain.Post) error
}

// CommentRepository 定义了评论数据的存储和检索操作。
type CommentRepository interface {
	// FindByID 根据评论 ID 查找评论。
	// 如果评论不存在，返回 ErrCommentNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Comment, error)

	// FindByPostID 按创建顺序返回帖子下的所有评论。
	FindByPostID(ctx context.Context, postID uint) ([]domain.Comment, error)

	// Save 保存评论 (创建或更新)。
	Save(ctx context.Context, comment *domain.Comment) error

	// Delete 删除单条评论。
	Delete(ctx context.Context, comment *domain.Comment) error

	// DeleteByPostID 删除帖子下的全部评论 (帖子删除时的显式级联)。
	DeleteByPostID(ctx context.Context, postID uint) error
}
