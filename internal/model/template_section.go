package model

import (
	"strings"
	"time"
)

// TemplateSection 模板分节表
type TemplateSection struct {
	ID         uint      `gorm:"primaryKey"`
	TemplateID uint      `gorm:"index;not null;default:0"`     // 关联模板ID
	Title      string    `gorm:"size:100;not null;default:''"` // 分节标题，如"甲方信息"
	Content    string    `gorm:"type:text;default:''"`         // 分节正文，含 <<tag>> 占位符
	Tags       string    `gorm:"size:500;default:''"`          // 逗号分隔的标签名，入库时从 Content 提取
	SortOrder  int       `gorm:"default:0"`                    // 排序序号
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

// TableName 指定表名
func (TemplateSection) TableName() string {
	return "template_sections"
}

// TagList 返回分节的标签名列表
func (s *TemplateSection) TagList() []string {
	if s.Tags == "" {
		return nil
	}
	return strings.Split(s.Tags, ",")
}
