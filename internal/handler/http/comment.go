package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hongik-programming-study/backend/internal/middleware"
	"github.com/hongik-programming-study/backend/internal/service"
)

// CommentHandler 封装了评论相关的 HTTP 处理逻辑
type CommentHandler struct {
	commentService *service.CommentService
}

// NewCommentHandler 创建 CommentHandler 实例
func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	if commentService == nil {
		panic("CommentService cannot be nil for CommentHandler")
	}
	return &CommentHandler{commentService: commentService}
}

// CommentRequest 定义评论创建/修改请求的结构体
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000"`
}

// commentScope 解析评论接口共用的路径参数
func commentScope(c *gin.Context) (boardType int, postID uint, ok bool) {
	boardType, ok = parseIntParam(c, "boardType")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid board type")
		return 0, 0, false
	}
	postID, ok = parseUintParam(c, "postId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return 0, 0, false
	}
	return boardType, postID, true
}

// RegisterComment 新增评论 POST /v1/boards/:boardType/posts/:postId/comments
func (h *CommentHandler) RegisterComment(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	boardType, postID, ok := commentScope(c)
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.RegisterComment: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	commentID, err := h.commentService.RegisterComment(c.Request.Context(), account, boardType, postID, req.Content)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessDataResponse(c, http.StatusOK, "comment registered", gin.H{"commentId": commentID})
}

// UpdateComment 修改评论 PUT /v1/boards/:boardType/posts/:postId/comments/:commentId
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	boardType, postID, ok := commentScope(c)
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "commentId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateComment: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	if err := h.commentService.UpdateComment(c.Request.Context(), account, boardType, postID, commentID, req.Content); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "comment updated")
}

// DeleteComment 删除评论 DELETE /v1/boards/:boardType/posts/:postId/comments/:commentId
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	boardType, postID, ok := commentScope(c)
	if !ok {
		return
	}
	commentID, ok := parseUintParam(c, "commentId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid comment id")
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), account, boardType, postID, commentID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "comment deleted")
}
