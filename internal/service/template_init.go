package service

import (
	"strings"

	"github.com/docassembler/backend/internal/model"
	"gorm.io/gorm"
)

// InitDefaultTemplates 初始化预置模板数据
func InitDefaultTemplates(db *gorm.DB) error {
	// 检查是否已存在预置模板
	var count int64
	db.Model(&model.Template{}).Where("is_system = ?", true).Count(&count)
	if count > 0 {
		// 已存在，跳过初始化
		return nil
	}

	// 使用事务创建预置模板
	return db.Transaction(func(tx *gorm.DB) error {
		templates := []*model.Template{
			{
				Name:        "服务合同",
				Description: "通用服务合同模板，覆盖双方信息、服务内容与付款条款",
				IsSystem:    true,
				SortOrder:   1,
				Sections: []model.TemplateSection{
					{
						Title:     "合同双方",
						Content:   "甲方：<<party_a>>\n乙方：<<party_b>>",
						SortOrder: 1,
					},
					{
						Title:     "服务内容",
						Content:   "乙方向甲方提供以下服务：<<service_scope>>\n服务期限：<<service_period>>",
						SortOrder: 2,
					},
					{
						Title:     "付款条款",
						Content:   "合同总金额：<<total_amount>>\n付款方式：<<payment_terms>>",
						SortOrder: 3,
					},
					{
						Title:     "签署",
						Content:   "甲方签章：<<party_a_signature>>\n乙方签章：<<party_b_signature>>\n签署日期：<<sign_date>>",
						SortOrder: 4,
					},
				},
			},
			{
				Name:        "保密协议",
				Description: "标准保密协议模板",
				IsSystem:    true,
				SortOrder:   2,
				Sections: []model.TemplateSection{
					{
						Title:     "协议双方",
						Content:   "披露方：<<disclosing_party>>\n接收方：<<receiving_party>>",
						SortOrder: 1,
					},
					{
						Title:     "保密范围",
						Content:   "保密信息包括：<<confidential_scope>>",
						SortOrder: 2,
					},
					{
						Title:     "保密期限",
						Content:   "保密义务自 <<effective_date>> 起持续 <<duration>>",
						SortOrder: 3,
					},
				},
			},
		}

		for _, tpl := range templates {
			// 入库前从正文提取标签，与用户创建路径保持一致
			for i := range tpl.Sections {
				tpl.Sections[i].Tags = strings.Join(ExtractTags(tpl.Sections[i].Content), ",")
			}
			if err := tx.Create(tpl).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// InitDefaultLibrary 初始化预置内容库（分类与片段）
func InitDefaultLibrary(db *gorm.DB) error {
	var count int64
	db.Model(&model.Category{}).Count(&count)
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categories := []struct {
			category model.Category
			snippets []model.ContentSnippet
		}{
			{
				category: model.Category{Label: "付款条款", SortOrder: 1},
				snippets: []model.ContentSnippet{
					{Title: "月结30天", Body: "自发票开具之日起30日内，以银行转账方式支付。"},
					{Title: "预付50%", Body: "合同签署后7日内预付合同总额的50%，余款于验收合格后支付。"},
				},
			},
			{
				category: model.Category{Label: "服务期限", SortOrder: 2},
				snippets: []model.ContentSnippet{
					{Title: "一年期", Body: "服务期限为自合同生效之日起一年。"},
					{Title: "项目制", Body: "服务期限以项目验收通过为止。"},
				},
			},
			{
				category: model.Category{Label: "保密条款", SortOrder: 3},
				snippets: []model.ContentSnippet{
					{Title: "标准保密范围", Body: "包括但不限于技术资料、商业计划、客户名单及双方往来文件。"},
				},
			},
		}

		for _, entry := range categories {
			category := entry.category
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
			for _, snippet := range entry.snippets {
				snippet.CategoryID = category.ID
				if err := tx.Create(&snippet).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
