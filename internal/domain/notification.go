package domain

import "time"

// Notification 表示发给账号的站内通知，例如自己的帖子收到新评论。
// 随评论注册在同一事务内写入，没有后台队列。
type Notification struct {
	ID        uint      `gorm:"primaryKey"`
	AccountID uint      `gorm:"index:idx_notification_account;not null"` // 通知接收者
	PostID    uint      `gorm:"index;not null"`                          // 关联的帖子
	Message   string    `gorm:"type:varchar(191);not null"`
	Read      bool      `gorm:"default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
