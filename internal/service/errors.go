package service

import "errors"

// 业务错误。每个错误携带固定描述，响应信封里的 msg 原样使用该描述；
// 与 HTTP 状态码的映射在 handler 层统一完成。
var (
	// 注册/登录
	ErrValidation      = errors.New("request validation failed")
	ErrEmailDuplicated = errors.New("email is already registered")
	// 登录失败刻意不区分邮箱不存在和密码错误，避免泄露账号是否存在
	ErrLoginFailed = errors.New("login failed: check your email and password")

	// 令牌
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("token is malformed")
	ErrInvalidToken   = errors.New("token is invalid")
	// 刷新令牌与存储中的记录不一致 (被新登录取代、已登出或从未签发)
	ErrTokenMismatch = errors.New("refresh token does not match")

	// 授权
	ErrNotOwner     = errors.New("account is not the owner of this resource")
	ErrPostMismatch = errors.New("comment does not belong to this post")

	// 资源
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrInternalServer = errors.New("internal server error")
)
