package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hongik-programming-study/backend/internal/domain"
)

// MigrateDB 迁移全部表结构，包括显式维护的 post_tags 连接表。
// 注意这里不声明任何数据库级联：评论/通知/连接行的删除
// 都是服务层事务里的显式语句。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	err := db.AutoMigrate(
		&domain.Account{},
		&domain.RefreshToken{},
		&domain.Post{},
		&domain.Comment{},
		&domain.Tag{},
		&domain.PostTag{},
		&domain.Notification{},
	)
	if err != nil {
		logrus.Errorf("Failed to auto-migrate tables: %v", err)
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
