package model

import "time"

// Category 内容分类表
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	Label     string    `gorm:"size:100;not null;default:''"` // 分类名称，如"付款条款"
	SortOrder int       `gorm:"default:0"`                    // 排序序号
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// ContentSnippet 内容片段表
type ContentSnippet struct {
	ID         uint      `gorm:"primaryKey"`
	CategoryID uint      `gorm:"index;not null;default:0"`     // 关联分类ID
	Title      string    `gorm:"size:100;not null;default:''"` // 片段标题
	Body       string    `gorm:"type:text;default:''"`         // 片段正文
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (ContentSnippet) TableName() string {
	return "content_snippets"
}
