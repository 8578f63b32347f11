package repository

import (
	"errors"
	"testing"

	"github.com/docassembler/backend/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTemplateTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.Template{}, &model.TemplateSection{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func TestTemplateRepositoryCreateAndGet(t *testing.T) {
	db := newTemplateTestDB(t)
	repo := NewTemplateRepository(db)

	tpl := &model.Template{
		Name: "服务合同",
		Sections: []model.TemplateSection{
			{Title: "付款条款", Content: "付款方式为 <<payment_terms>>。", Tags: "payment_terms", SortOrder: 2},
			{Title: "当事人", Content: "甲方 <<party_a>>，乙方 <<party_b>>。", Tags: "party_a,party_b", SortOrder: 1},
		},
	}
	if err := repo.Create(tpl); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if tpl.ID == 0 {
		t.Fatalf("expected template id assigned")
	}

	got, err := repo.GetByID(tpl.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(got.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(got.Sections))
	}
	// 分节按 sort_order 预加载
	if got.Sections[0].Title != "当事人" || got.Sections[1].Title != "付款条款" {
		t.Fatalf("unexpected section order: %s, %s", got.Sections[0].Title, got.Sections[1].Title)
	}
	if tags := got.Sections[0].TagList(); len(tags) != 2 || tags[0] != "party_a" {
		t.Fatalf("unexpected tag list: %v", tags)
	}
}

func TestTemplateRepositoryGetByIDNotFound(t *testing.T) {
	db := newTemplateTestDB(t)
	repo := NewTemplateRepository(db)

	if _, err := repo.GetByID(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTemplateRepositoryDeleteCascadesSections(t *testing.T) {
	db := newTemplateTestDB(t)
	repo := NewTemplateRepository(db)

	tpl := &model.Template{
		Name: "保密协议",
		Sections: []model.TemplateSection{
			{Title: "保密义务", Content: "<<confidential_scope>>", Tags: "confidential_scope", SortOrder: 1},
		},
	}
	if err := repo.Create(tpl); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := repo.Delete(tpl.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}

	if _, err := repo.GetByID(tpl.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	var count int64
	db.Model(&model.TemplateSection{}).Where("template_id = ?", tpl.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected sections removed, got %d", count)
	}
}

func TestTemplateRepositoryListOrder(t *testing.T) {
	db := newTemplateTestDB(t)
	repo := NewTemplateRepository(db)

	for _, tpl := range []*model.Template{
		{Name: "B", SortOrder: 2},
		{Name: "A", SortOrder: 1},
	} {
		if err := repo.Create(tpl); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	templates, err := repo.List()
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(templates) != 2 || templates[0].Name != "A" {
		t.Fatalf("unexpected list order: %+v", templates)
	}
}
