package service_test // 测试包

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/repository"
	"github.com/hongik-programming-study/backend/internal/repository/mocks"
	"github.com/hongik-programming-study/backend/internal/service"
)

func newTestSignService(t *testing.T, userRepo *mocks.UserRepository, tokenRepo *mocks.RefreshTokenRepository) *service.SignService {
	t.Helper()
	provider, err := service.NewTokenProvider("test-secret", 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err, "创建 TokenProvider 不应失败")
	return service.NewSignService(userRepo, tokenRepo, provider, mocks.TxManager{})
}

// --- 测试 Signup 方法 ---

func TestSignService_Signup_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	signService := newTestSignService(t, mockUserRepo, mockTokenRepo)

	ctx := context.Background()
	email := "a@x.com"
	password := "12341234"

	mockUserRepo.On("ExistsByEmail", ctx, email).Return(false, nil).Once()
	mockUserRepo.On("Save", ctx, mock.MatchedBy(func(account *domain.Account) bool {
		assert.Equal(t, email, account.Email)
		assert.Equal(t, "tester", account.Nickname)
		assert.Equal(t, domain.RoleUser, account.Roles)
		// 验证密码已被正确哈希
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)), "密码应被正确哈希")
		return true
	})).
		Run(func(args mock.Arguments) { // 模拟数据库填充主键
			args.Get(1).(*domain.Account).ID = 5
		}).
		Return(nil).Once()
	// 注册成功后应当持久化初始刷新令牌，Key 为账号 ID
	mockTokenRepo.On("Save", ctx, mock.MatchedBy(func(token *domain.RefreshToken) bool {
		assert.Equal(t, uint(5), token.Key)
		assert.NotEmpty(t, token.Token)
		assert.True(t, token.ExpiresAt.After(time.Now()), "刷新令牌的过期时间应在未来")
		return true
	})).Return(nil).Once()

	// Act
	accountID, err := signService.Signup(ctx, email, "tester", password)

	// Assert
	assert.NoError(t, err, "成功注册时不应有错误")
	assert.Equal(t, uint(5), accountID)

	mockUserRepo.AssertExpectations(t)
	mockTokenRepo.AssertExpectations(t)
}

func TestSignService_Signup_EmailDuplicated(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	signService := newTestSignService(t, mockUserRepo, mockTokenRepo)
	ctx := context.Background()

	mockUserRepo.On("ExistsByEmail", ctx, "dup@x.com").Return(true, nil).Once()

	// Act
	_, err := signService.Signup(ctx, "dup@x.com", "tester", "12341234")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrEmailDuplicated)

	mockUserRepo.AssertExpectations(t)
	// 已存在的账号和它的刷新令牌都不应被触碰
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	mockTokenRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSignService_Signup_PasswordPolicy(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	signService := newTestSignService(t, mockUserRepo, mockTokenRepo)

	// Act: 密码太短 (策略要求至少 8 位)
	_, err := signService.Signup(context.Background(), "a@x.com", "tester", "1234")

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrValidation)
	mockUserRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	mockUserRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- 测试 Login 方法 ---

func TestSignService_Login_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	signService := newTestSignService(t, mockUserRepo, mockTokenRepo)
	ctx := context.Background()

	password := "12341234"
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	account := &domain.Account{ID: 1, Email: "a@x.com", Password: string(hashed), Roles: domain.RoleUser}

	mockUserRepo.On("FindByEmail", ctx, "a@x.com").Return(account, nil).Once()
	// 登录覆盖写入该账号的刷新令牌 (单活跃会话)
	var storedToken string
	mockTokenRepo.On("Save", ctx, mock.MatchedBy(func(token *domain.RefreshToken) bool {
		storedToken = token.Token
		return token.Key == account.ID
	})).Return(nil).Once()

	// Act
	pair, err := signService.Login(ctx, "a@x.com", password)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, pair.RefreshToken, storedToken, "存储的刷新令牌应与返回给客户端的一致")

	mockUserRepo.AssertExpectations(t)
	mockTokenRepo.AssertExpectations(t)
}

func TestSignService_Login_Undifferentiated(t *testing.T) {
	// 邮箱不存在和密码错误必须返回同一个错误，不可区分
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	signService := newTestSignService(t, mockUserRepo, mockTokenRepo)
	ctx := context.Background()

	hashed, _ := bcrypt.GenerateFromPassword([]byte("12341234"), bcrypt.DefaultCost)
	account := &domain.Account{ID: 1, Email: "a@x.com", Password: string(hashed)}

	mockUserRepo.On("FindByEmail", ctx, "nobody@x.com").Return(nil, repository.ErrUserNotFound).Once()
	mockUserRepo.On("FindByEmail", ctx, "a@x.com").Return(account, nil).Once()

	// Act
	_, errUnknownEmail := signService.Login(ctx, "nobody@x.com", "12341234")
	_, errWrongPassword := signService.Login(ctx, "a@x.com", "wrong-password")

	// Assert
	require.Error(t, errUnknownEmail)
	require.Error(t, errWrongPassword)
	assert.ErrorIs(t, errUnknownEmail, service.ErrLoginFailed)
	assert.ErrorIs(t, errWrongPassword, service.ErrLoginFailed)
	assert.Equal(t, errUnknownEmail.Error(), errWrongPassword.Error(), "两种失败的描述必须一致")

	mockTokenRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- 测试 Reissue 方法 ---

func TestSignService_Reissue_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	provider, err := service.NewTokenProvider("test-secret", 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)
	signService := service.NewSignService(mockUserRepo, mockTokenRepo, provider, mocks.TxManager{})
	ctx := context.Background()

	account := &domain.Account{ID: 1, Email: "a@x.com", Roles: domain.RoleUser}
	oldPair, oldExpiry, err := provider.Issue(account.Email, account.RoleList())
	require.NoError(t, err)
	stored := &domain.RefreshToken{Key: account.ID, Token: oldPair.RefreshToken, ExpiresAt: oldExpiry}

	mockUserRepo.On("FindByEmail", ctx, account.Email).Return(account, nil).Once()
	mockTokenRepo.On("FindByKey", ctx, account.ID).Return(stored, nil).Once()
	var replacedToken string
	mockTokenRepo.On("Save", ctx, mock.MatchedBy(func(token *domain.RefreshToken) bool {
		replacedToken = token.Token
		return token.Key == account.ID
	})).Return(nil).Once()

	// Act
	newPair, err := signService.Reissue(ctx, oldPair)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, newPair)
	assert.Equal(t, newPair.RefreshToken, replacedToken, "存储的令牌应被原子替换为新刷新令牌")

	mockUserRepo.AssertExpectations(t)
	mockTokenRepo.AssertExpectations(t)
}

func TestSignService_Reissue_ReplayedTokenRejected(t *testing.T) {
	// Arrange: 完整走一遍 签发 → 刷新 → 重放旧令牌 的序列，
	// 全程使用真实签发器，不手工伪造存储内容
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	provider, err := service.NewTokenProvider("test-secret", 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)
	signService := service.NewSignService(mockUserRepo, mockTokenRepo, provider, mocks.TxManager{})
	ctx := context.Background()

	account := &domain.Account{ID: 1, Email: "a@x.com", Roles: domain.RoleUser}
	oldPair, oldExpiry, err := provider.Issue(account.Email, account.RoleList())
	require.NoError(t, err)

	mockUserRepo.On("FindByEmail", ctx, account.Email).Return(account, nil).Twice()
	mockTokenRepo.On("FindByKey", ctx, account.ID).
		Return(&domain.RefreshToken{Key: account.ID, Token: oldPair.RefreshToken, ExpiresAt: oldExpiry}, nil).Once()
	var replaced *domain.RefreshToken
	mockTokenRepo.On("Save", ctx, mock.AnythingOfType("*domain.RefreshToken")).
		Run(func(args mock.Arguments) {
			saved := *args.Get(1).(*domain.RefreshToken)
			replaced = &saved
		}).
		Return(nil).Once()

	// Act: 第一次刷新成功并替换存储中的令牌
	newPair, err := signService.Reissue(ctx, oldPair)
	require.NoError(t, err)
	require.NotNil(t, replaced)
	assert.NotEqual(t, oldPair.RefreshToken, newPair.RefreshToken, "刷新后新旧令牌必须不同")
	assert.Equal(t, newPair.RefreshToken, replaced.Token)

	// Act: 重放已被替换的旧刷新令牌
	mockTokenRepo.On("FindByKey", ctx, account.ID).Return(replaced, nil).Once()
	_, err = signService.Reissue(ctx, oldPair)

	// Assert: 旧令牌签名仍有效，但与存储比对必须失败
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrTokenMismatch)
	mockTokenRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestSignService_Reissue_SupersededToken(t *testing.T) {
	// Arrange: 呈上的刷新令牌签名有效，但存储里已是更新登录写入的另一个令牌
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	provider, err := service.NewTokenProvider("test-secret", 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)
	signService := service.NewSignService(mockUserRepo, mockTokenRepo, provider, mocks.TxManager{})
	ctx := context.Background()

	account := &domain.Account{ID: 1, Email: "a@x.com", Roles: domain.RoleUser}
	stalePair, _, err := provider.Issue(account.Email, account.RoleList())
	require.NoError(t, err)
	current := &domain.RefreshToken{Key: account.ID, Token: "another-refresh-token", ExpiresAt: time.Now().Add(time.Hour)}

	mockUserRepo.On("FindByEmail", ctx, account.Email).Return(account, nil).Once()
	mockTokenRepo.On("FindByKey", ctx, account.ID).Return(current, nil).Once()

	// Act: 重放被取代的旧令牌
	_, err = signService.Reissue(ctx, stalePair)

	// Assert: 仅凭签名验证会通过，但与存储比对必须失败
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrTokenMismatch)
	mockTokenRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSignService_Reissue_NeverIssued(t *testing.T) {
	// Arrange: 手工伪造的刷新令牌 —— 签名有效但系统从未签发过 (存储无记录)
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	provider, err := service.NewTokenProvider("test-secret", 30*time.Minute, 14*24*time.Hour)
	require.NoError(t, err)
	signService := service.NewSignService(mockUserRepo, mockTokenRepo, provider, mocks.TxManager{})
	ctx := context.Background()

	account := &domain.Account{ID: 1, Email: "a@x.com", Roles: domain.RoleUser}
	forgedPair, _, err := provider.Issue(account.Email, account.RoleList())
	require.NoError(t, err)

	mockUserRepo.On("FindByEmail", ctx, account.Email).Return(account, nil).Once()
	mockTokenRepo.On("FindByKey", ctx, account.ID).Return(nil, repository.ErrRefreshTokenNotFound).Once()

	// Act
	_, err = signService.Reissue(ctx, forgedPair)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrTokenMismatch)
}

func TestSignService_Reissue_ExpiredRefreshToken(t *testing.T) {
	// Arrange: 刷新令牌自身已过期，必须强制重新登录，不做静默续期
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	provider, err := service.NewTokenProvider("test-secret", time.Nanosecond, time.Nanosecond)
	require.NoError(t, err)
	signService := service.NewSignService(mockUserRepo, mockTokenRepo, provider, mocks.TxManager{})

	pair, _, err := provider.Issue("a@x.com", []string{domain.RoleUser})
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	// Act
	_, err = signService.Reissue(context.Background(), pair)

	// Assert: 在签名/有效期验证这道关口就该被拒
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrExpiredToken)
	mockUserRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	mockTokenRepo.AssertNotCalled(t, "FindByKey", mock.Anything, mock.Anything)
}

// --- 测试 Logout 方法 ---

func TestSignService_Logout(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	mockTokenRepo := new(mocks.RefreshTokenRepository)
	signService := newTestSignService(t, mockUserRepo, mockTokenRepo)
	ctx := context.Background()

	mockTokenRepo.On("DeleteByKey", ctx, uint(1)).Return(nil).Once()

	// Act
	err := signService.Logout(ctx, 1)

	// Assert
	assert.NoError(t, err)
	mockTokenRepo.AssertExpectations(t)
}
