package service_test // 测试包

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
	"github.com/hongik-programming-study/backend/internal/repository/mocks"
	"github.com/hongik-programming-study/backend/internal/service"
)

type commentServiceMocks struct {
	postRepo         *mocks.PostRepository
	commentRepo      *mocks.CommentRepository
	notificationRepo *mocks.NotificationRepository
}

func newTestCommentService() (*service.CommentService, *commentServiceMocks) {
	m := &commentServiceMocks{
		postRepo:         new(mocks.PostRepository),
		commentRepo:      new(mocks.CommentRepository),
		notificationRepo: new(mocks.NotificationRepository),
	}
	svc := service.NewCommentService(m.postRepo, m.commentRepo, m.notificationRepo, mocks.TxManager{})
	return svc, m
}

func TestCommentService_RegisterComment_NotifiesPostOwner(t *testing.T) {
	// Arrange: 评论别人的帖子，帖子作者应收到通知
	svc, m := newTestCommentService()
	ctx := context.Background()
	acting := &domain.Account{ID: 2, Nickname: "commenter"}
	post := &domain.Post{ID: 100, Type: 1, Title: "hello", AccountID: 1}

	m.postRepo.On("FindByIDAndType", ctx, uint(100), 1).Return(post, nil).Once()
	m.commentRepo.On("Save", ctx, mock.MatchedBy(func(comment *domain.Comment) bool {
		assert.Equal(t, uint(100), comment.PostID, "评论应归属于目标帖子")
		assert.Equal(t, acting.ID, comment.AccountID)
		return true
	})).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Comment).ID = 50 }).
		Return(nil).Once()
	m.notificationRepo.On("Save", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		assert.Equal(t, uint(1), n.AccountID, "通知应发给帖子作者")
		assert.Equal(t, uint(100), n.PostID)
		assert.Contains(t, n.Message, "commenter")
		assert.False(t, n.Read)
		return true
	})).Return(nil).Once()

	// Act
	commentID, err := svc.RegisterComment(ctx, acting, 1, 100, "nice post")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(50), commentID)
	m.notificationRepo.AssertExpectations(t)
}

func TestCommentService_RegisterComment_SelfCommentNoNotification(t *testing.T) {
	// Arrange: 评论自己的帖子不产生通知
	svc, m := newTestCommentService()
	ctx := context.Background()
	owner := &domain.Account{ID: 1, Nickname: "owner"}
	post := &domain.Post{ID: 100, Type: 1, Title: "hello", AccountID: 1}

	m.postRepo.On("FindByIDAndType", ctx, uint(100), 1).Return(post, nil).Once()
	m.commentRepo.On("Save", ctx, mock.AnythingOfType("*domain.Comment")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Comment).ID = 51 }).
		Return(nil).Once()

	// Act
	_, err := svc.RegisterComment(ctx, owner, 1, 100, "my own note")

	// Assert
	require.NoError(t, err)
	m.notificationRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommentService_RegisterComment_PostNotFound(t *testing.T) {
	// Arrange: 帖子不存在 (或板块类别不匹配)
	svc, m := newTestCommentService()
	ctx := context.Background()
	acting := &domain.Account{ID: 2}

	m.postRepo.On("FindByIDAndType", ctx, uint(999), 1).Return(nil, repository.ErrPostNotFound).Once()

	// Act
	_, err := svc.RegisterComment(ctx, acting, 1, 999, "hello?")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPostNotFound)
	m.commentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommentService_UpdateComment_NotOwner(t *testing.T) {
	// Arrange: 非作者修改评论被拒
	svc, m := newTestCommentService()
	ctx := context.Background()
	stranger := &domain.Account{ID: 3}
	post := &domain.Post{ID: 100, Type: 1, AccountID: 1}
	comment := &domain.Comment{ID: 50, PostID: 100, AccountID: 2, Content: "original"}

	m.postRepo.On("FindByIDAndType", ctx, uint(100), 1).Return(post, nil).Once()
	m.commentRepo.On("FindByID", ctx, uint(50)).Return(comment, nil).Once()

	// Act
	err := svc.UpdateComment(ctx, stranger, 1, 100, 50, "tampered")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrNotOwner)
	m.commentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommentService_UpdateComment_PostMismatch(t *testing.T) {
	// Arrange: 评论 ID 有效、操作者也是作者，但 URL 指向的是另一个帖子
	svc, m := newTestCommentService()
	ctx := context.Background()
	author := &domain.Account{ID: 2}
	otherPost := &domain.Post{ID: 200, Type: 1, AccountID: 1}
	comment := &domain.Comment{ID: 50, PostID: 100, AccountID: 2, Content: "original"}

	m.postRepo.On("FindByIDAndType", ctx, uint(200), 1).Return(otherPost, nil).Once()
	m.commentRepo.On("FindByID", ctx, uint(50)).Return(comment, nil).Once()

	// Act
	err := svc.UpdateComment(ctx, author, 1, 200, 50, "relocated?")

	// Assert: 跨帖篡改被拒，评论不被改动
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrPostMismatch)
	m.commentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCommentService_UpdateComment_OwnershipCheckedBeforeParent(t *testing.T) {
	// Arrange: 既不是作者、帖子也不匹配时，优先报所有权错误
	svc, m := newTestCommentService()
	ctx := context.Background()
	stranger := &domain.Account{ID: 3}
	otherPost := &domain.Post{ID: 200, Type: 1, AccountID: 1}
	comment := &domain.Comment{ID: 50, PostID: 100, AccountID: 2}

	m.postRepo.On("FindByIDAndType", ctx, uint(200), 1).Return(otherPost, nil).Once()
	m.commentRepo.On("FindByID", ctx, uint(50)).Return(comment, nil).Once()

	// Act
	err := svc.UpdateComment(ctx, stranger, 1, 200, 50, "x")

	// Assert
	assert.ErrorIs(t, err, service.ErrNotOwner)
}

func TestCommentService_DeleteComment_Success(t *testing.T) {
	// Arrange
	svc, m := newTestCommentService()
	ctx := context.Background()
	author := &domain.Account{ID: 2}
	post := &domain.Post{ID: 100, Type: 1, AccountID: 1}
	comment := &domain.Comment{ID: 50, PostID: 100, AccountID: 2}

	m.postRepo.On("FindByIDAndType", ctx, uint(100), 1).Return(post, nil).Once()
	m.commentRepo.On("FindByID", ctx, uint(50)).Return(comment, nil).Once()
	m.commentRepo.On("Delete", ctx, comment).Return(nil).Once()

	// Act
	err := svc.DeleteComment(ctx, author, 1, 100, 50)

	// Assert
	require.NoError(t, err)
	m.commentRepo.AssertExpectations(t)
}

func TestCommentService_DeleteComment_CommentNotFound(t *testing.T) {
	// Arrange
	svc, m := newTestCommentService()
	ctx := context.Background()
	author := &domain.Account{ID: 2}
	post := &domain.Post{ID: 100, Type: 1, AccountID: 1}

	m.postRepo.On("FindByIDAndType", ctx, uint(100), 1).Return(post, nil).Once()
	m.commentRepo.On("FindByID", ctx, uint(999)).Return(nil, repository.ErrCommentNotFound).Once()

	// Act
	err := svc.DeleteComment(ctx, author, 1, 100, 999)

	// Assert
	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}
