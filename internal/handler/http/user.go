package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hongik-programming-study/backend/internal/domain"
	"github.com/hongik-programming-study/backend/internal/middleware"
	"github.com/hongik-programming-study/backend/internal/service"
)

// UserHandler 封装了账号管理相关的 HTTP 处理逻辑
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(userService *service.UserService) *UserHandler {
	if userService == nil {
		panic("UserService cannot be nil for UserHandler")
	}
	return &UserHandler{userService: userService}
}

// UserResponse 是账号信息的响应载荷，不包含密码哈希。
type UserResponse struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Nickname      string    `json:"nickname"`
	Roles         []string  `json:"roles"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserResponse(account *domain.Account) UserResponse {
	return UserResponse{
		ID:            account.ID,
		Email:         account.Email,
		Nickname:      account.Nickname,
		Roles:         account.RoleList(),
		EmailVerified: account.EmailVerified,
		CreatedAt:     account.CreatedAt,
	}
}

// GetUser 查询单个账号 GET /v1/users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	account, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessDataResponse(c, http.StatusOK, "user found", toUserResponse(account))
}

// GetUsers 分页查询账号列表 GET /v1/users?page=&size=
func (h *UserHandler) GetUsers(c *gin.Context) {
	page, size := pageQuery(c)

	accounts, count, err := h.userService.GetUsers(c.Request.Context(), page, size)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	list := make([]UserResponse, 0, len(accounts))
	for i := range accounts {
		list = append(list, toUserResponse(&accounts[i]))
	}
	SuccessDataResponse(c, http.StatusOK, "users found", ListData{List: list, Count: count})
}

// UpdateUserRequest 定义账号修改请求的结构体
type UpdateUserRequest struct {
	Nickname string `json:"nickname" binding:"required,min=2,max=20"`
}

// UpdateUser 修改账号信息 PUT /v1/users/:userId
func (h *UserHandler) UpdateUser(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateUser: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	if err := h.userService.UpdateUser(c.Request.Context(), account, userID, req.Nickname); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "user updated")
}

// UpdatePasswordRequest 定义改密请求的结构体
type UpdatePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// UpdatePassword 修改密码 PUT /v1/users/:userId/updatePassword
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdatePassword: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	if err := h.userService.UpdatePassword(c.Request.Context(), account, userID, req.OldPassword, req.NewPassword); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "password updated")
}

// DeleteUser 注销账号 DELETE /v1/users/:userId
func (h *UserHandler) DeleteUser(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	userID, ok := parseUintParam(c, "userId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), account, userID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "user withdrawn")
}
