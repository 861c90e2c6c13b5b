package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// FindByIDAndType 根据 (帖子 ID, 板块类别) 查找帖子。
// 类别不匹配等同于记录不存在。
func (r *GormPostRepository) FindByIDAndType(ctx context.Context, id uint, boardType int) (*domain.Post, error) {
	var post domain.Post
	err := dbFrom(ctx, r.db).Where("id = ? AND type = ?", id, boardType).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d and type %d: %w", id, boardType, err)
	}
	return &post, nil
}

// FindAllByType 分页查询某板块下的帖子，按创建时间倒序
func (r *GormPostRepository) FindAllByType(ctx context.Context, boardType int, page, size int) ([]domain.Post, error) {
	var posts []domain.Post
	offset := (page - 1) * size
	err := dbFrom(ctx, r.db).Where("type = ?", boardType).
		Order("created_at desc, id desc").Offset(offset).Limit(size).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find posts by type %d (page: %d, size: %d): %w", boardType, page, size, err)
	}
	return posts, nil
}

// CountByType 返回某板块的帖子总数
func (r *GormPostRepository) CountByType(ctx context.Context, boardType int) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&domain.Post{}).Where("type = ?", boardType).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("gorm: count posts by type %d: %w", boardType, err)
	}
	return count, nil
}

// Save 保存帖子（创建或更新）
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	err := dbFrom(ctx, r.db).Omit("Comments", "Tags").Save(post).Error
	if err != nil {
		return fmt.Errorf("gorm: save post (id: %d, type: %d): %w", post.ID, post.Type, err)
	}
	return nil
}

// Delete 删除帖子行本身。关联数据的清理由服务层在同一事务内显式完成。
func (r *GormPostRepository) Delete(ctx context.Context, post *domain.Post) error {
	err := dbFrom(ctx, r.db).Delete(&domain.Post{}, post.ID).Error
	if err != nil {
		return fmt.Errorf("gorm: delete post (id: %d): %w", post.ID, err)
	}
	return nil
}

// GormCommentRepository 是 CommentRepository 接口的 GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository 创建 GormCommentRepository 实例
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

// FindByID 根据评论 ID 查找评论
func (r *GormCommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	err := dbFrom(ctx, r.db).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, fmt.Errorf("gorm: find comment by id %d: %w", id, err)
	}
	return &comment, nil
}

// FindByPostID 按创建顺序返回帖子下的所有评论
func (r *GormCommentRepository) FindByPostID(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := dbFrom(ctx, r.db).Where("post_id = ?", postID).Order("id asc").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find comments by post id %d: %w", postID, err)
	}
	return comments, nil
}

// Save 保存评论（创建或更新）
func (r *GormCommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	err := dbFrom(ctx, r.db).Save(comment).Error
	if err != nil {
		return fmt.Errorf("gorm: save comment (id: %d, post: %d): %w", comment.ID, comment.PostID, err)
	}
	return nil
}

// Delete 删除单条评论
func (r *GormCommentRepository) Delete(ctx context.Context, comment *domain.Comment) error {
	err := dbFrom(ctx, r.db).Delete(&domain.Comment{}, comment.ID).Error
	if err != nil {
		return fmt.Errorf("gorm: delete comment (id: %d): %w", comment.ID, err)
	}
	return nil
}

// DeleteByPostID 删除帖子下的全部评论（帖子删除时的显式级联路径）
func (r *GormCommentRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	err := dbFrom(ctx, r.db).Where("post_id = ?", postID).Delete(&domain.Comment{}).Error
	if err != nil {
		return fmt.Errorf("gorm: delete comments by post id %d: %w", postID, err)
	}
	return nil
}
