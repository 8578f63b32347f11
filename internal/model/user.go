package model

import "time"

// User 用户表
type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:100;not null;default:''"`       // 显示名称
	Email        string    `gorm:"size:255;uniqueIndex;not null"`      // 邮箱，登录标识
	Picture      string    `gorm:"size:500"`                           // 头像地址
	Provider     string    `gorm:"size:20;not null;default:'local'"`   // 登录方式：google, local
	PasswordHash string    `gorm:"size:100"`                           // 本地账号密码哈希，google 登录为空
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
