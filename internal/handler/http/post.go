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

// PostHandler 封装了帖子相关的 HTTP 处理逻辑
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler 创建 PostHandler 实例
func NewPostHandler(postService *service.PostService) *PostHandler {
	if postService == nil {
		panic("PostService cannot be nil for PostHandler")
	}
	return &PostHandler{postService: postService}
}

// PostRequest 定义帖子创建/修改请求的结构体
type PostRequest struct {
	Title   string   `json:"title" binding:"required,max=100"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" binding:"omitempty,dive,min=1,max=30"`
}

// CommentResponse 是评论的响应载荷
type CommentResponse struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	AccountID uint      `json:"accountId"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostResponse 是帖子的响应载荷
type PostResponse struct {
	ID             uint              `json:"id"`
	Type           int               `json:"type"`
	Title          string            `json:"title"`
	Content        string            `json:"content"`
	AuthorNickname string            `json:"authorNickname,omitempty"`
	Tags           []string          `json:"tags"`
	Comments       []CommentResponse `json:"comments,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

func toPostResponse(post *domain.Post, author *domain.Account) PostResponse {
	tags := make([]string, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, tag.Name)
	}
	comments := make([]CommentResponse, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, CommentResponse{
			ID:        comment.ID,
			Content:   comment.Content,
			AccountID: comment.AccountID,
			CreatedAt: comment.CreatedAt,
		})
	}
	resp := PostResponse{
		ID:        post.ID,
		Type:      post.Type,
		Title:     post.Title,
		Content:   post.Content,
		Tags:      tags,
		Comments:  comments,
		CreatedAt: post.CreatedAt,
	}
	if author != nil {
		resp.AuthorNickname = author.Nickname
	}
	return resp
}

// RegisterPost 创建帖子 POST /v1/boards/:boardType/posts
func (h *PostHandler) RegisterPost(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	boardType, ok := parseIntParam(c, "boardType")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid board type")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.RegisterPost: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	postID, err := h.postService.RegisterPost(c.Request.Context(), account, boardType, &service.PostRequest{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessDataResponse(c, http.StatusOK, "post registered", gin.H{"postId": postID})
}

// GetPost 查询单个帖子 GET /v1/boards/:boardType/posts/:postId
func (h *PostHandler) GetPost(c *gin.Context) {
	boardType, ok := parseIntParam(c, "boardType")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid board type")
		return
	}
	postID, ok := parseUintParam(c, "postId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, author, err := h.postService.GetPost(c.Request.Context(), boardType, postID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessDataResponse(c, http.StatusOK, "post found", toPostResponse(post, author))
}

// GetPosts 分页查询板块帖子 GET /v1/boards/:boardType/posts?page=&size=
func (h *PostHandler) GetPosts(c *gin.Context) {
	boardType, ok := parseIntParam(c, "boardType")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid board type")
		return
	}
	page, size := pageQuery(c)

	posts, count, err := h.postService.GetPosts(c.Request.Context(), boardType, page, size)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	list := make([]PostResponse, 0, len(posts))
	for i := range posts {
		list = append(list, toPostResponse(&posts[i], nil))
	}
	SuccessDataResponse(c, http.StatusOK, "posts found", ListData{List: list, Count: count})
}

// UpdatePost 修改帖子 PUT /v1/boards/:boardType/posts/:postId
func (h *PostHandler) UpdatePost(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	boardType, ok := parseIntParam(c, "boardType")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid board type")
		return
	}
	postID, ok := parseUintParam(c, "postId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdatePost: invalid input format")
		ErrorResponse(c, http.StatusBadRequest, bindingMsg(err))
		return
	}

	updatedID, err := h.postService.UpdatePost(c.Request.Context(), account, boardType, postID, &service.PostRequest{
		Title:   req.Title,
		Content: req.Content,
		Tags:    req.Tags,
	})
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessDataResponse(c, http.StatusOK, "post updated", gin.H{"postId": updatedID})
}

// DeletePost 删除帖子 DELETE /v1/boards/:boardType/posts/:postId
func (h *PostHandler) DeletePost(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	boardType, ok := parseIntParam(c, "boardType")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid board type")
		return
	}
	postID, ok := parseUintParam(c, "postId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), account, boardType, postID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "post deleted")
}
