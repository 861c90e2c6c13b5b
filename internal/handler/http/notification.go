package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hongik-programming-study/backend/internal/middleware"
	"github.com/hongik-programming-study/backend/internal/service"
)

// NotificationHandler 封装了站内通知相关的 HTTP 处理逻辑
type NotificationHandler struct {
	notificationService *service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler 实例
func NewNotificationHandler(notificationService *service.NotificationService) *NotificationHandler {
	if notificationService == nil {
		panic("NotificationService cannot be nil for NotificationHandler")
	}
	return &NotificationHandler{notificationService: notificationService}
}

// NotificationResponse 是通知的响应载荷
type NotificationResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"postId"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetNotifications 查询自己的通知 GET /v1/notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}

	notifications, err := h.notificationService.GetNotifications(c.Request.Context(), account.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	list := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		list = append(list, NotificationResponse{
			ID:        n.ID,
			PostID:    n.PostID,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	SuccessDataResponse(c, http.StatusOK, "notifications found", ListData{List: list, Count: int64(len(list))})
}

// ReadNotification 标记通知已读 PUT /v1/notifications/:notificationId/read
func (h *NotificationHandler) ReadNotification(c *gin.Context) {
	account, ok := middleware.CurrentAccount(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, service.ErrInvalidToken.Error())
		return
	}
	notificationID, ok := parseUintParam(c, "notificationId")
	if !ok {
		ErrorResponse(c, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationService.ReadNotification(c.Request.Context(), account, notificationID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "notification read")
}
