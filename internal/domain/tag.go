package domain

// Tag 表示帖子的标签。按名称去重 (get-or-create)，
// 被多个帖子共享，删除帖子不会删除仍被引用的标签。
type Tag struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(191);uniqueIndex:idx_tag_name;not null"`
}

// PostTag 是帖子与标签的多对多连接表，由仓库层显式维护。
type PostTag struct {
	PostID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false"`
}
