package model

import "time"

// Template 文档模板表
type Template struct {
	ID          uint              `gorm:"primaryKey"`
	Name        string            `gorm:"size:100;not null;default:''"` // 模板名称，如"服务合同"
	Description string            `gorm:"size:500"`                     // 描述
	IsSystem    bool              `gorm:"default:false"`                // 是否系统预置
	SortOrder   int               `gorm:"default:0"`                    // 排序序号
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
	Sections    []TemplateSection `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE;"`
}

// TableName 指定表名
func (Template) TableName() string {
	return "templates"
}
