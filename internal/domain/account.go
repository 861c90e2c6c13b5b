// Package domain 定义了应用程序中使用的数据结构 (数据库模型)。
package domain

import (
	"strings"
	"time"
)

// RoleUser 是注册时赋予账号的默认角色。
const RoleUser = "ROLE_USER"

// Account 表示论坛的用户账号。
type Account struct {
	ID            uint      `gorm:"primaryKey"`                           // 账号唯一标识符 (主键)
	Email         string    `gorm:"type:varchar(191);uniqueIndex:idx_email;not null"` // 登录邮箱，必须唯一
	Password      string    `gorm:"type:text;not null"`                   // 存储的是 bcrypt 哈希后的密码
	Nickname      string    `gorm:"type:varchar(64);not null"`            // 显示昵称
	Roles         string    `gorm:"type:varchar(191);not null"`           // 角色列表，逗号分隔 (如 "ROLE_USER,ROLE_ADMIN")
	EmailVerified bool      `gorm:"default:false"`                        // 邮箱验证标记，注册时为 false
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// RoleList 把逗号分隔的角色字符串拆成有序切片。
func (a *Account) RoleList() []string {
	if a.Roles == "" {
		return nil
	}
	return strings.Split(a.Roles, ",")
}

// SetRoles 把角色切片写回逗号分隔形式。
func (a *Account) SetRoles(roles []string) {
	a.Roles = strings.Join(roles, ",")
}

// IsSame 按账号标识比较两个账号是否是同一行。
// 不能用指针相等：同一账号可能被分别加载成不同实例。
func (a *Account) IsSame(other *Account) bool {
	if a == nil || other == nil {
		return false
	}
	return a.ID != 0 && a.ID == other.ID
}
