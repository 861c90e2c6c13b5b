package repository

import "context"

// TxManager 把一个函数包进一个读写事务。
// fn 返回 error 时整个事务回滚；fn 内的仓库调用必须使用传入的 ctx，
// 事务句柄通过 ctx 传递给各仓库实现。
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
