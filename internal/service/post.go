package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// assertOwner 所有权校验：操作者必须是资源所有者。
// 按账号 ID 比较而不是实例相等，分别加载的同一账号要能通过。
func assertOwner(acting *domain.Account, ownerID uint) error {
	if acting == nil || acting.ID == 0 || acting.ID != ownerID {
		return ErrNotOwner
	}
	return nil
}

// PostRequest 是帖子创建/修改的输入。
type PostRequest struct {
	Title   string
	Content string
	Tags    []string
}

// PostService 负责帖子相关的业务逻辑，包括标签的 get-or-create
// 和帖子删除时对关联数据的显式级联。
type PostService struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	tagRepo          repository.TagRepository
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	tx               repository.TxManager
}

// NewPostService 创建 PostService 实例。
func NewPostService(postRepo repository.PostRepository, commentRepo repository.CommentRepository,
	tagRepo repository.TagRepository, notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository, tx repository.TxManager) *PostService {
	if postRepo == nil || commentRepo == nil || tagRepo == nil || notificationRepo == nil || userRepo == nil || tx == nil {
		panic("dependencies cannot be nil for PostService")
	}
	return &PostService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		tagRepo:          tagRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		tx:               tx,
	}
}

// RegisterPost 创建帖子。标签按名称 get-or-create 去重，
// 帖子和标签连接在同一事务内写入。返回新帖子 ID。
func (s *PostService) RegisterPost(ctx context.Context, acting *domain.Account, boardType int, req *PostRequest) (uint, error) {
	logCtx := logrus.WithFields(logrus.Fields{"account_id": acting.ID, "board_type": boardType})

	if req == nil || req.Title == "" || req.Content == "" {
		return 0, ErrValidation
	}

	post := &domain.Post{
		Type:      boardType,
		Title:     req.Title,
		Content:   req.Content,
		AccountID: acting.ID, // 所有者创建后不可变更
	}

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		tagIDs, err := s.resolveTags(ctx, req.Tags)
		if err != nil {
			return err
		}
		if err := s.postRepo.Save(ctx, post); err != nil {
			logCtx.WithError(err).Error("RegisterPost: save failed")
			return ErrInternalServer
		}
		if err := s.tagRepo.ReplacePostTags(ctx, post.ID, tagIDs); err != nil {
			logCtx.WithError(err).Error("RegisterPost: tag linking failed")
			return ErrInternalServer
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logCtx.WithField("post_id", post.ID).Info("Post registered")
	return post.ID, nil
}

// GetPost 根据 (板块类别, 帖子 ID) 查询帖子，带出评论、标签和作者。
// 类别不匹配视为不存在 (ErrPostNotFound)。
func (s *PostService) GetPost(ctx context.Context, boardType int, postID uint) (*domain.Post, *domain.Account, error) {
	post, err := s.findByTypeAndID(ctx, boardType, postID)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.commentRepo.FindByPostID(ctx, post.ID)
	if err != nil {
		logrus.WithError(err).WithField("post_id", post.ID).Error("GetPost: loading comments failed")
		return nil, nil, ErrInternalServer
	}
	tags, err := s.tagRepo.FindByPostID(ctx, post.ID)
	if err != nil {
		logrus.WithError(err).WithField("post_id", post.ID).Error("GetPost: loading tags failed")
		return nil, nil, ErrInternalServer
	}
	post.Comments = comments
	post.Tags = tags

	author, err := s.userRepo.FindByID(ctx, post.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// 作者已注销，帖子本身仍可读
			return post, nil, nil
		}
		logrus.WithError(err).WithField("post_id", post.ID).Error("GetPost: loading author failed")
		return nil, nil, ErrInternalServer
	}
	return post, author, nil
}

// GetPosts 分页查询某板块的帖子 (不带评论)，返回列表和总数。
func (s *PostService) GetPosts(ctx context.Context, boardType int, page, size int) ([]domain.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	posts, err := s.postRepo.FindAllByType(ctx, boardType, page, size)
	if err != nil {
		logrus.WithError(err).WithField("board_type", boardType).Error("GetPosts: repository error")
		return nil, 0, ErrInternalServer
	}
	for i := range posts {
		tags, err := s.tagRepo.FindByPostID(ctx, posts[i].ID)
		if err != nil {
			logrus.WithError(err).WithField("post_id", posts[i].ID).Error("GetPosts: loading tags failed")
			return nil, 0, ErrInternalServer
		}
		posts[i].Tags = tags
	}
	count, err := s.postRepo.CountByType(ctx, boardType)
	if err != nil {
		logrus.WithError(err).WithField("board_type", boardType).Error("GetPosts: count error")
		return nil, 0, ErrInternalServer
	}
	return posts, count, nil
}

// UpdatePost 修改帖子。先所有权校验再改动，标签整体替换。
// 返回 (可能未变的) 帖子 ID。
func (s *PostService) UpdatePost(ctx context.Context, acting *domain.Account, boardType int, postID uint, req *PostRequest) (uint, error) {
	if req == nil || req.Title == "" || req.Content == "" {
		return 0, ErrValidation
	}
	post, err := s.findByTypeAndID(ctx, boardType, postID)
	if err != nil {
		return 0, err
	}
	if err := assertOwner(acting, post.AccountID); err != nil {
		logrus.WithFields(logrus.Fields{"acting": acting.ID, "post_id": postID}).
			Warn("UpdatePost rejected: not the post owner")
		return 0, err
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		tagIDs, err := s.resolveTags(ctx, req.Tags)
		if err != nil {
			return err
		}
		post.Title = req.Title
		post.Content = req.Content
		if err := s.postRepo.Save(ctx, post); err != nil {
			logrus.WithError(err).WithField("post_id", postID).Error("UpdatePost: save failed")
			return ErrInternalServer
		}
		if err := s.tagRepo.ReplacePostTags(ctx, post.ID, tagIDs); err != nil {
			logrus.WithError(err).WithField("post_id", postID).Error("UpdatePost: tag relinking failed")
			return ErrInternalServer
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}

// DeletePost 删除帖子。所有权校验通过后，在一个事务内显式级联：
// 先删评论和通知，再清标签连接，最后删帖子行。
// 仍被其他帖子引用的标签保留，只清理掉引用归零的孤儿标签。
func (s *PostService) DeletePost(ctx context.Context, acting *domain.Account, boardType int, postID uint) error {
	post, err := s.findByTypeAndID(ctx, boardType, postID)
	if err != nil {
		return err
	}
	if err := assertOwner(acting, post.AccountID); err != nil {
		logrus.WithFields(logrus.Fields{"acting": acting.ID, "post_id": postID}).
			Warn("DeletePost rejected: not the post owner")
		return err
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		tags, err := s.tagRepo.FindByPostID(ctx, post.ID)
		if err != nil {
			return err
		}
		if err := s.commentRepo.DeleteByPostID(ctx, post.ID); err != nil {
			return err
		}
		if err := s.notificationRepo.DeleteByPostID(ctx, post.ID); err != nil {
			return err
		}
		if err := s.tagRepo.ClearPostTags(ctx, post.ID); err != nil {
			return err
		}
		if err := s.postRepo.Delete(ctx, post); err != nil {
			return err
		}
		return s.cleanupOrphanTags(ctx, tags)
	})
	if err != nil {
		logrus.WithError(err).WithField("post_id", postID).Error("DeletePost: transaction failed")
		return ErrInternalServer
	}

	logrus.WithField("post_id", postID).Info("Post deleted")
	return nil
}

// cleanupOrphanTags 删除引用计数归零的标签行。
// 连接行已清掉之后计数，仍被别的帖子引用的标签计数非零、被保留。
func (s *PostService) cleanupOrphanTags(ctx context.Context, tags []domain.Tag) error {
	for i := range tags {
		count, err := s.tagRepo.CountPostsByTagID(ctx, tags[i].ID)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := s.tagRepo.Delete(ctx, &tags[i]); err != nil {
			return err
		}
	}
	return nil
}

// findByTypeAndID 按 (类别, ID) 查找帖子并映射仓库错误。
func (s *PostService) findByTypeAndID(ctx context.Context, boardType int, postID uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByIDAndType(ctx, postID, boardType)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithFields(logrus.Fields{"post_id": postID, "board_type": boardType}).
			Error("Repository error finding post")
		return nil, ErrInternalServer
	}
	// 防御性检查
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// resolveTags 把标签名称集合解析成标签 ID 集合，按名称 get-or-create。
// 两个并发请求创建同名标签时，唯一索引兜底，输掉的一方回头读已有行。
func (s *PostService) resolveTags(ctx context.Context, names []string) ([]uint, error) {
	seen := make(map[string]bool, len(names))
	tagIDs := make([]uint, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.tagRepo.FindByName(ctx, name)
		if err == nil {
			tagIDs = append(tagIDs, tag.ID)
			continue
		}
		if !errors.Is(err, repository.ErrTagNotFound) {
			logrus.WithError(err).WithField("tag", name).Error("Repository error finding tag")
			return nil, ErrInternalServer
		}

		newTag := &domain.Tag{Name: name}
		err = s.tagRepo.Save(ctx, newTag)
		if err == nil {
			tagIDs = append(tagIDs, newTag.ID)
			continue
		}
		if errors.Is(err, repository.ErrDuplicateEntry) {
			tag, err = s.tagRepo.FindByName(ctx, name)
			if err != nil {
				logrus.WithError(err).WithField("tag", name).Error("Repository error re-reading tag after conflict")
				return nil, ErrInternalServer
			}
			tagIDs = append(tagIDs, tag.ID)
			continue
		}
		logrus.WithError(err).WithField("tag", name).Error("Repository error creating tag")
		return nil, ErrInternalServer
	}
	return tagIDs, nil
}
