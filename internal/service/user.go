package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// UserService 负责账号信息的查询和维护。
type UserService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tx        repository.TxManager
}

// NewUserService 创建 UserService 实例。
func NewUserService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository,
	tx repository.TxManager) *UserService {
	if userRepo == nil || tokenRepo == nil || tx == nil {
		panic("dependencies cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo, tokenRepo: tokenRepo, tx: tx}
}

// GetUser 查询单个账号。
func (s *UserService) GetUser(ctx context.Context, id uint) (*domain.Account, error) {
	account, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("account_id", id).Error("GetUser: repository error")
		return nil, ErrInternalServer
	}
	return account, nil
}

// GetUsers 分页查询账号列表，返回列表和总数。
func (s *UserService) GetUsers(ctx context.Context, page, size int) ([]domain.Account, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	accounts, err := s.userRepo.FindAll(ctx, page, size)
	if err != nil {
		logrus.WithError(err).Error("GetUsers: repository error")
		return nil, 0, ErrInternalServer
	}
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		logrus.WithError(err).Error("GetUsers: count error")
		return nil, 0, ErrInternalServer
	}
	return accounts, count, nil
}

// UpdateUser 更新账号昵称。只能修改自己的账号，否则返回 ErrNotOwner。
func (s *UserService) UpdateUser(ctx context.Context, acting *domain.Account, targetID uint, nickname string) error {
	if nickname == "" {
		return ErrValidation
	}
	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return err
	}
	if !acting.IsSame(target) {
		logrus.WithFields(logrus.Fields{"acting": acting.ID, "target": targetID}).
			Warn("UpdateUser rejected: not the account owner")
		return ErrNotOwner
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		target.Nickname = nickname
		if err := s.userRepo.Save(ctx, target); err != nil {
			logrus.WithError(err).WithField("account_id", targetID).Error("UpdateUser: save failed")
			return ErrInternalServer
		}
		return nil
	})
}

// UpdatePassword 修改密码。需要提供正确的旧密码，新密码须满足策略。
func (s *UserService) UpdatePassword(ctx context.Context, acting *domain.Account, targetID uint, oldPassword, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return ErrValidation
	}
	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return err
	}
	if !acting.IsSame(target) {
		return ErrNotOwner
	}
	if bcrypt.CompareHashAndPassword([]byte(target.Password), []byte(oldPassword)) != nil {
		logrus.WithField("account_id", targetID).Warn("UpdatePassword rejected: old password mismatch")
		return ErrLoginFailed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("UpdatePassword: failed to hash new password")
		return ErrInternalServer
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		target.Password = string(hashed)
		if err := s.userRepo.Save(ctx, target); err != nil {
			logrus.WithError(err).WithField("account_id", targetID).Error("UpdatePassword: save failed")
			return ErrInternalServer
		}
		return nil
	})
}

// DeleteUser 注销账号。只能注销自己；刷新令牌和账号记录
// 在同一事务内一并删除。
func (s *UserService) DeleteUser(ctx context.Context, acting *domain.Account, targetID uint) error {
	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return err
	}
	if !acting.IsSame(target) {
		return ErrNotOwner
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.tokenRepo.DeleteByKey(ctx, target.ID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, target)
	})
	if err != nil {
		logrus.WithError(err).WithField("account_id", targetID).Error("DeleteUser: transaction failed")
		return ErrInternalServer
	}
	logrus.WithField("account_id", targetID).Info("Account withdrawn")
	return nil
}
