package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hongik-programming-study/backend/internal/middleware"
	"github.com/hongik-programming-study/backend/internal/service"
)

// SignHandler 封装了注册/登录/令牌换发相关的 HTTP 处理逻辑
type SignHandler struct {
	signService *service.SignService
}

// NewSignHandler 创建 SignHandler 实例
func NewSignHandler(signService *service.SignService) *SignHandler {
	if signService == nil {
		panic("SignService cannot be nil for SignHandler")
	}
	return &SignHandler{signService: signService}
}

// SignupRequest 定义注册请求的结构体
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required,min=2,max=20"`
	Password string `json:"password" binding:"required,min=8"`
}

// Signup 处理注册请求 POST /v1/signup
func (h *SignHandler) Signup(c *gin.Context) {
	var req SignupRequest
	// 1. 绑定并验证输入 JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Signup: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	// 2. 调用 Service 层处理注册逻辑
	accountID, err := h.signService.Signup(c.Request.Context(), req.Email, req.Nickname, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	// 3. 注册成功响应 (不回传任何敏感信息)
	logrus.WithField("account_id", accountID).Info("Handler.Signup: account registered")
	SuccessResponse(c, http.StatusOK, "signup succeeded")
}

// LoginRequest 定义登录请求的结构体
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 是令牌对的响应载荷
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Login 处理登录请求 POST /v1/login
func (h *SignHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	pair, err := h.signService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessDataResponse(c, http.StatusOK, "login succeeded", TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// ReissueRequest 定义令牌换发请求的结构体
type ReissueRequest struct {
	AccessToken  string `json:"accessToken" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Reissue 处理令牌换发请求 POST /v1/reissue
func (h *SignHandler) Reissue(c *gin.Context) {
	var req ReissueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Reissue: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	pair, err := h.signService.Reissue(c.Request.Context(), &service.TokenPair{
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	SuccessDataResponse(c, http.StatusOK, "token reissued", TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout 处理登出请求 POST /v1/logout (需要认证)
func (h *SignHandler) Logout(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}

	if err := h.signService.Logout(c.Request.Context(), account.ID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "logout succeeded")
}
