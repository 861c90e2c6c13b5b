package domain

import "time"

// Post 表示某个板块下的帖子。
// (Type, ID) 共同构成对外寻址键：在错误的板块下按 ID 查询视为不存在。
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Type      int       `gorm:"index:idx_post_type;not null"` // 板块类别 (整数枚举)
	Title     string    `gorm:"type:varchar(191);not null"`
	Content   string    `gorm:"type:text;not null"`
	AccountID uint      `gorm:"index;not null"` // 帖子所有者，创建后不可变更
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	// 关联数据由仓库层显式装配，不依赖 GORM 的级联/预加载魔法。
	Comments []Comment `gorm:"-"`
	Tags     []Tag     `gorm:"-"`
}
