// Package mocks 提供 repository 接口的 testify mock 实现，供服务层单元测试使用。
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hongik-programming-study/backend/internal/domain"
)

// TxManager 是 repository.TxManager 的直通实现：没有真实事务语义，
// 直接执行传入的函数并返回其错误，让单元测试穿透事务边界。
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// UserRepository 是 repository.UserRepository 的 mock
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	var account *domain.Account
	if v := args.Get(0); v != nil {
		account = v.(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	args := m.Called(ctx, id)
	var account *domain.Account
	if v := args.Get(0); v != nil {
		account = v.(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Save(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *UserRepository) FindAll(ctx context.Context, page, size int) ([]domain.Account, error) {
	args := m.Called(ctx, page, size)
	var accounts []domain.Account
	if v := args.Get(0); v != nil {
		accounts = v.([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *UserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// RefreshTokenRepository 是 repository.RefreshTokenRepository 的 mock
type RefreshTokenRepository struct {
	mock.Mock
}

func (m *RefreshTokenRepository) FindByKey(ctx context.Context, key uint) (*domain.RefreshToken, error) {
	args := m.Called(ctx, key)
	var token *domain.RefreshToken
	if v := args.Get(0); v != nil {
		token = v.(*domain.RefreshToken)
	}
	return token, args.Error(1)
}

func (m *RefreshTokenRepository) Save(ctx context.Context, token *domain.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *RefreshTokenRepository) DeleteByKey(ctx context.Context, key uint) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// PostRepository 是 repository.PostRepository 的 mock
type PostRepository struct {
	mock.Mock
}

func (m *PostRepository) FindByIDAndType(ctx context.Context, id uint, boardType int) (*domain.Post, error) {
	args := m.Called(ctx, id, boardType)
	var post *domain.Post
	if v := args.Get(0); v != nil {
		post = v.(*domain.Post)
	}
	return post, args.Error(1)
}

func (m *PostRepository) FindAllByType(ctx context.Context, boardType int, page, size int) ([]domain.Post, error) {
	args := m.Called(ctx, boardType, page, size)
	var posts []domain.Post
	if v := args.Get(0); v != nil {
		posts = v.([]domain.Post)
	}
	return posts, args.Error(1)
}

func (m *PostRepository) CountByType(ctx context.Context, boardType int) (int64, error) {
	args := m.Called(ctx, boardType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *PostRepository) Save(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *PostRepository) Delete(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// CommentRepository 是 repository.CommentRepository 的 mock
type CommentRepository struct {
	mock.Mock
}

func (m *CommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	args := m.Called(ctx, id)
	var comment *domain.Comment
	if v := args.Get(0); v != nil {
		comment = v.(*domain.Comment)
	}
	return comment, args.Error(1)
}

func (m *CommentRepository) FindByPostID(ctx context.Context, postID uint) ([]domain.Comment, error) {
	args := m.Called(ctx, postID)
	var comments []domain.Comment
	if v := args.Get(0); v != nil {
		comments = v.([]domain.Comment)
	}
	return comments, args.Error(1)
}

func (m *CommentRepository) Save(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) Delete(ctx context.Context, comment *domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *CommentRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// TagRepository 是 repository.TagRepository 的 mock
type TagRepository struct {
	mock.Mock
}

func (m *TagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	args := m.Called(ctx, name)
	var tag *domain.Tag
	if v := args.Get(0); v != nil {
		tag = v.(*domain.Tag)
	}
	return tag, args.Error(1)
}

func (m *TagRepository) Save(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *TagRepository) FindByPostID(ctx context.Context, postID uint) ([]domain.Tag, error) {
	args := m.Called(ctx, postID)
	var tags []domain.Tag
	if v := args.Get(0); v != nil {
		tags = v.([]domain.Tag)
	}
	return tags, args.Error(1)
}

func (m *TagRepository) ReplacePostTags(ctx context.Context, postID uint, tagIDs []uint) error {
	args := m.Called(ctx, postID, tagIDs)
	return args.Error(0)
}

func (m *TagRepository) ClearPostTags(ctx context.Context, postID uint) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

func (m *TagRepository) Delete(ctx context.Context, tag *domain.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *TagRepository) CountPostsByTagID(ctx context.Context, tagID uint) (int64, error) {
	args := m.Called(ctx, tagID)
	return args.Get(0).(int64), args.Error(1)
}

// NotificationRepository 是 repository.NotificationRepository 的 mock
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Save(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *NotificationRepository) FindByID(ctx context.Context, id uint) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	var notification *domain.Notification
	if v := args.Get(0); v != nil {
		notification = v.(*domain.Notification)
	}
	return notification, args.Error(1)
}

func (m *NotificationRepository) FindByAccountID(ctx context.Context, accountID uint) ([]domain.Notification, error) {
	args := m.Called(ctx, accountID)
	var notifications []domain.Notification
	if v := args.Get(0); v != nil {
		notifications = v.([]domain.Notification)
	}
	return notifications, args.Error(1)
}

func (m *NotificationRepository) DeleteByPostID(ctx context.Context, postID uint) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}
