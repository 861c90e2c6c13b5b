package domain

import "time"

// RefreshToken 表示某个账号当前唯一有效的刷新令牌。
// 不变量：每个账号最多只有一行记录 (Key 即账号 ID，作主键)，
// 重新登录或令牌换发时整行被覆盖，实现单会话语义。
type RefreshToken struct {
	Key       uint      `gorm:"primaryKey;autoIncrement:false"` // 账号 ID (主键，不自增)
	Token     string    `gorm:"type:text;not null"`             // 当前有效的刷新令牌字符串
	ExpiresAt time.Time `gorm:"not null"`                       // 刷新令牌过期时间
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
