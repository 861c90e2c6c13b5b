package gormpersistence

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

// txKey 是事务句柄在 context 中的键类型。
type txKey struct{}

// GormTxManager 是 repository.TxManager 的 GORM 实现。
// Do 打开一个数据库事务，把事务句柄塞进 ctx 供各仓库提取；
// fn 返回 error 时 GORM 自动回滚，否则提交。
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager 创建 GormTxManager 实例。
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	if db == nil {
		panic("database connection cannot be nil for GormTxManager")
	}
	return &GormTxManager{db: db}
}

func (m *GormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom 返回当前应使用的 DB 句柄：ctx 里有事务就用事务，
// 否则退回仓库自己的连接。所有仓库方法都经过这里，
// 保证同一个服务操作内的读写落在同一个事务上。
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return fallback.WithContext(ctx)
}

// isDuplicateEntryError 检查常见的唯一约束错误字符串。
// TODO: 替换为特定数据库驱动的错误码检查方式。
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "Duplicate entry") || // MySQL
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
