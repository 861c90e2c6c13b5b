package domain

import "time"

// Comment 表示帖子下的评论。PostID 和 AccountID 在创建时设置一次，
// 之后不再重新指派。
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	Content   string    `gorm:"type:text;not null"`
	PostID    uint      `gorm:"index:idx_comment_post;not null"` // 所属帖子
	AccountID uint      `gorm:"index;not null"`                  // 评论作者
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
