package model

import "time"

// GenerationRequest 文档生成请求表
// 会话是内存态的，生成请求需要在会话结束后仍可追溯，因此落库
type GenerationRequest struct {
	ID         uint      `gorm:"primaryKey"`
	SessionID  string    `gorm:"size:36;index;not null;default:''"` // 发起请求的会话ID
	UserID     uint      `gorm:"index;not null;default:0"`          // 发起请求的用户ID
	TemplateID uint      `gorm:"not null;default:0"`                // 使用的模板ID
	Payload    string    `gorm:"type:text;default:''"`              // 提交给文档生成服务的 JSON
	Status     string    `gorm:"size:20;not null;default:'pending'"`
	ResultURL  string    `gorm:"size:500"` // 生成服务返回的文档地址
	Error      string    `gorm:"size:500"` // 失败原因
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (GenerationRequest) TableName() string {
	return "generation_requests"
}
