package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
)

// minPasswordLen 是注册/改密时密码的最小长度。
const minPasswordLen = 8

// SignService 负责注册、登录、令牌换发等认证相关的业务逻辑。
type SignService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tokens    *TokenProvider
	tx        repository.TxManager
}

// NewSignService 创建 SignService 实例。
func NewSignService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository,
	tokens *TokenProvider, tx repository.TxManager) *SignService {
	if userRepo == nil || tokenRepo == nil || tokens == nil || tx == nil {
		panic("dependencies cannot be nil for SignService")
	}
	return &SignService{userRepo: userRepo, tokenRepo: tokenRepo, tokens: tokens, tx: tx}
}

// Signup 处理用户注册。
// 邮箱已存在返回 ErrEmailDuplicated，密码不满足策略返回 ErrValidation；
// 成功时保存哈希后的密码、签发初始令牌并持久化刷新令牌，返回新账号 ID。
func (s *SignService) Signup(ctx context.Context, email, nickname, rawPassword string) (uint, error) {
	logCtx := logrus.WithFields(logrus.Fields{"email": email, "nickname": nickname})

	// 1. 基本验证
	if email == "" || nickname == "" {
		return 0, ErrValidation
	}
	if len(rawPassword) < minPasswordLen {
		logCtx.Warn("Signup failed: password policy not met")
		return 0, ErrValidation
	}

	// 2. 邮箱唯一性检查
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		logCtx.WithError(err).Error("Database error checking email uniqueness")
		return 0, ErrInternalServer
	}
	if exists {
		logCtx.Warn("Signup failed: email already registered")
		return 0, ErrEmailDuplicated
	}

	// 3. 哈希密码
	hashed, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during signup")
		return 0, ErrInternalServer
	}

	account := &domain.Account{
		Email:    email,
		Nickname: nickname,
		Password: string(hashed),
		Roles:    domain.RoleUser,
	}

	// 4. 账号保存 + 初始令牌签发在同一事务内完成，
	//    任一步失败整体回滚，不会留下没有令牌的半成品账号。
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.userRepo.Save(ctx, account); err != nil {
			// 与唯一索引竞态：并发注册同一邮箱时数据库兜底
			if errors.Is(err, repository.ErrDuplicateEntry) {
				return ErrEmailDuplicated
			}
			logCtx.WithError(err).Error("Database error during account creation")
			return ErrInternalServer
		}
		if _, err := s.issueAndStore(ctx, account); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logCtx.WithField("account_id", account.ID).Info("Account registered successfully")
	return account.ID, nil
}

// Login 处理用户登录。
// 邮箱不存在和密码错误统一返回 ErrLoginFailed，不泄露账号是否存在。
// 成功时签发新令牌对并覆盖该账号已有的刷新令牌 (单活跃会话)。
func (s *SignService) Login(ctx context.Context, email, rawPassword string) (*TokenPair, error) {
	logCtx := logrus.WithField("email", email)

	// 1. 查找账号
	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: account not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: error finding account")
		}
		return nil, ErrLoginFailed
	}
	// 防御性检查，以防仓库实现返回 nil, nil
	if account == nil {
		logCtx.Warn("Login attempt failed: repository returned nil account without error")
		return nil, ErrLoginFailed
	}

	// 2. 验证密码
	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(rawPassword)) != nil {
		logCtx.Warn("Login attempt failed: invalid password")
		return nil, ErrLoginFailed
	}

	// 3. 签发令牌对并覆盖存储的刷新令牌
	var pair *TokenPair
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		pair, err = s.issueAndStore(ctx, account)
		return err
	})
	if err != nil {
		return nil, err
	}

	logCtx.WithField("account_id", account.ID).Info("Account logged in successfully")
	return pair, nil
}

// Reissue 用一对旧令牌换发一对新令牌。
// 呈上的刷新令牌必须同时通过两道检查：自身签名/有效期验证，
// 以及与存储中该账号当前令牌的逐字比对 —— 一个签名仍然有效、
// 但已被更新登录取代的旧令牌在第二道检查被拒 (ErrTokenMismatch)。
// 刷新令牌本身过期返回 ErrExpiredToken，强制重新登录。
func (s *SignService) Reissue(ctx context.Context, pair *TokenPair) (*TokenPair, error) {
	if pair == nil || pair.RefreshToken == "" {
		return nil, ErrValidation
	}

	// 1. 独立验证刷新令牌的签名和有效期
	email, err := s.tokens.Subject(pair.RefreshToken)
	if err != nil {
		logrus.WithError(err).Warn("Reissue failed: refresh token validation")
		return nil, err // ErrExpiredToken / ErrMalformedToken / ErrInvalidToken
	}
	logCtx := logrus.WithField("email", email)

	// 2. 查找令牌主体对应的账号
	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Reissue failed: account not found")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Database error finding account during reissue")
		return nil, ErrInternalServer
	}

	// 3. 与存储比对并原子替换
	var newPair *TokenPair
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		stored, err := s.tokenRepo.FindByKey(ctx, account.ID)
		if err != nil {
			if errors.Is(err, repository.ErrRefreshTokenNotFound) {
				// 存储里没有：已登出，或该令牌从未被系统签发
				logCtx.Warn("Reissue failed: no stored refresh token")
				return ErrTokenMismatch
			}
			logCtx.WithError(err).Error("Database error finding stored refresh token")
			return ErrInternalServer
		}
		if stored.Token != pair.RefreshToken {
			logCtx.Warn("Reissue failed: refresh token superseded or unknown")
			return ErrTokenMismatch
		}
		if time.Now().After(stored.ExpiresAt) {
			logCtx.Warn("Reissue failed: stored refresh token expired")
			return ErrExpiredToken
		}

		newPair, err = s.issueAndStore(ctx, account)
		return err
	})
	if err != nil {
		return nil, err
	}

	logCtx.WithField("account_id", account.ID).Info("Token pair reissued")
	return newPair, nil
}

// Logout 删除账号的刷新令牌；之后对该账号的换发请求会因
// 存储中无记录而失败。
func (s *SignService) Logout(ctx context.Context, accountID uint) error {
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		return s.tokenRepo.DeleteByKey(ctx, accountID)
	})
	if err != nil {
		logrus.WithError(err).WithField("account_id", accountID).Error("Failed to delete refresh token on logout")
		return ErrInternalServer
	}
	logrus.WithField("account_id", accountID).Info("Account logged out")
	return nil
}

// issueAndStore 签发一对令牌并把刷新令牌覆盖写入存储。
// 必须在调用方的事务 ctx 内执行。
func (s *SignService) issueAndStore(ctx context.Context, account *domain.Account) (*TokenPair, error) {
	pair, refreshExpiry, err := s.tokens.Issue(account.Email, account.RoleList())
	if err != nil {
		logrus.WithError(err).Error("Failed to issue token pair")
		return nil, ErrInternalServer
	}
	token := &domain.RefreshToken{
		Key:       account.ID,
		Token:     pair.RefreshToken,
		ExpiresAt: refreshExpiry,
	}
	if err := s.tokenRepo.Save(ctx, token); err != nil {
		logrus.WithError(err).WithField("account_id", account.ID).Error("Failed to persist refresh token")
		return nil, ErrInternalServer
	}
	return pair, nil
}
