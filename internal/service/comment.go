package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// CommentService 负责评论相关的业务逻辑。
// 修改/删除前做双重校验：操作者必须是评论作者，
// 且评论必须真的属于 URL 里指定的帖子。
type CommentService struct {
	postRepo         repository.PostRepository
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
	tx               repository.TxManager
}

// NewCommentService 创建 CommentService 实例。
func NewCommentService(postRepo repository.PostRepository, commentRepo repository.CommentRepository,
	notificationRepo repository.NotificationRepository, tx repository.TxManager) *CommentService {
	if postRepo == nil || commentRepo == nil || notificationRepo == nil || tx == nil {
		panic("dependencies cannot be nil for CommentService")
	}
	return &CommentService{
		postRepo:         postRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		tx:               tx,
	}
}

// RegisterComment 在帖子下新增评论。评论写入和给帖子作者的通知
// 在同一事务内完成；自己评论自己的帖子不产生通知。
func (s *CommentService) RegisterComment(ctx context.Context, acting *domain.Account, boardType int, postID uint, content string) (uint, error) {
	logCtx := logrus.WithFields(logrus.Fields{"account_id": acting.ID, "post_id": postID})

	if content == "" {
		return 0, ErrValidation
	}
	post, err := s.findPost(ctx, boardType, postID)
	if err != nil {
		return 0, err
	}

	comment := &domain.Comment{
		Content:   content,
		PostID:    post.ID,    // 创建时设置一次，之后不再重新指派
		AccountID: acting.ID,
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.commentRepo.Save(ctx, comment); err != nil {
			logCtx.WithError(err).Error("RegisterComment: save failed")
			return ErrInternalServer
		}
		if post.AccountID != acting.ID {
			notification := &domain.Notification{
				AccountID: post.AccountID,
				PostID:    post.ID,
				Message:   fmt.Sprintf("%s commented on your post '%s'", acting.Nickname, post.Title),
			}
			if err := s.notificationRepo.Save(ctx, notification); err != nil {
				logCtx.WithError(err).Error("RegisterComment: notification save failed")
				return ErrInternalServer
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logCtx.WithField("comment_id", comment.ID).Info("Comment registered")
	return comment.ID, nil
}

// UpdateComment 修改评论内容。
func (s *CommentService) UpdateComment(ctx context.Context, acting *domain.Account, boardType int, postID, commentID uint, content string) error {
	if content == "" {
		return ErrValidation
	}
	comment, err := s.guardedComment(ctx, acting, boardType, postID, commentID)
	if err != nil {
		return err
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		comment.Content = content
		if err := s.commentRepo.Save(ctx, comment); err != nil {
			logrus.WithError(err).WithField("comment_id", commentID).Error("UpdateComment: save failed")
			return ErrInternalServer
		}
		return nil
	})
}

// DeleteComment 删除评论。
func (s *CommentService) DeleteComment(ctx context.Context, acting *domain.Account, boardType int, postID, commentID uint) error {
	comment, err := s.guardedComment(ctx, acting, boardType, postID, commentID)
	if err != nil {
		return err
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		return s.commentRepo.Delete(ctx, comment)
	})
	if err != nil {
		logrus.WithError(err).WithField("comment_id", commentID).Error("DeleteComment: delete failed")
		return ErrInternalServer
	}
	logrus.WithField("comment_id", commentID).Info("Comment deleted")
	return nil
}

// guardedComment 解析帖子和评论并做变更前校验：
// 1. 帖子必须在指定板块下存在；
// 2. 操作者必须是评论作者 (ErrNotOwner)；
// 3. 评论必须属于该帖子 (ErrPostMismatch) —— 评论 ID 有效但
//    URL 里的帖子不是它的父帖时照样拒绝，防止跨帖篡改。
func (s *CommentService) guardedComment(ctx context.Context, acting *domain.Account, boardType int, postID, commentID uint) (*domain.Comment, error) {
	post, err := s.findPost(ctx, boardType, postID)
	if err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		logrus.WithError(err).WithField("comment_id", commentID).Error("Repository error finding comment")
		return nil, ErrInternalServer
	}

	if err := assertOwner(acting, comment.AccountID); err != nil {
		logrus.WithFields(logrus.Fields{"acting": acting.ID, "comment_id": commentID}).
			Warn("Comment mutation rejected: not the comment owner")
		return nil, err
	}
	if comment.PostID != post.ID {
		logrus.WithFields(logrus.Fields{"comment_id": commentID, "post_id": postID, "parent_id": comment.PostID}).
			Warn("Comment mutation rejected: post mismatch")
		return nil, ErrPostMismatch
	}
	return comment, nil
}

func (s *CommentService) findPost(ctx context.Context, boardType int, postID uint) (*domain.Post, error) {
	post, err := s.postRepo.FindByIDAndType(ctx, postID, boardType)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		logrus.WithError(err).WithField("post_id", postID).Error("Repository error finding post")
		return nil, ErrInternalServer
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}
