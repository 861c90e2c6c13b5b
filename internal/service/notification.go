package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// NotificationService 负责站内通知的查询和已读标记。
// 通知的产生在 CommentService 的事务里，这里只消费。
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	tx               repository.TxManager
}

// NewNotificationService 创建 NotificationService 实例。
func NewNotificationService(notificationRepo repository.NotificationRepository, tx repository.TxManager) *NotificationService {
	if notificationRepo == nil || tx == nil {
		panic("dependencies cannot be nil for NotificationService")
	}
	return &NotificationService{notificationRepo: notificationRepo, tx: tx}
}

// GetNotifications 返回账号的通知列表，新的在前。
func (s *NotificationService) GetNotifications(ctx context.Context, accountID uint) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.FindByAccountID(ctx, accountID)
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Error("GetNotifications: repository error")
		return nil, ErrInternalServer
	}
	return notifications, nil
}

// ReadNotification 把一条通知标记为已读。只能操作自己的通知。
func (s *NotificationService) ReadNotification(ctx context.Context, acting *domain.Account, notificationID uint) error {
	notification, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		logrus.WithError(err).WithField("notification_id", notificationID).Error("ReadNotification: repository error")
		return ErrInternalServer
	}
	if err := assertOwner(acting, notification.AccountID); err != nil {
		return err
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		notification.Read = true
		if err := s.notificationRepo.Save(ctx, notification); err != nil {
			logrus.WithError(err).WithField("notification_id", notificationID).Error("ReadNotification: save failed")
			return ErrInternalServer
		}
		return nil
	})
}
