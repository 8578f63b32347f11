package service

import (
	"context"
	"errors"
	"testing"

	"github.com/docassembler/backend/internal/model"
	"github.com/docassembler/backend/internal/repository"
)

type mockTemplateRepo struct {
	templates map[uint]*model.Template
	nextID    uint
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[uint]*model.Template)}
}

func (m *mockTemplateRepo) List() ([]model.Template, error) {
	var out []model.Template
	for _, tpl := range m.templates {
		out = append(out, *tpl)
	}
	return out, nil
}

func (m *mockTemplateRepo) GetByID(id uint) (*model.Template, error) {
	tpl, ok := m.templates[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return tpl, nil
}

func (m *mockTemplateRepo) GetByName(name string) (*model.Template, error) {
	for _, tpl := range m.templates {
		if tpl.Name == name {
			return tpl, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockTemplateRepo) Create(tpl *model.Template) error {
	m.nextID++
	tpl.ID = m.nextID
	for i := range tpl.Sections {
		tpl.Sections[i].ID = tpl.ID*100 + uint(i)
	}
	m.templates[tpl.ID] = tpl
	return nil
}

func (m *mockTemplateRepo) Save(tpl *model.Template) error {
	m.templates[tpl.ID] = tpl
	return nil
}

func (m *mockTemplateRepo) Delete(id uint) error {
	delete(m.templates, id)
	return nil
}

func TestTemplateCreateExtractsTags(t *testing.T) {
	svc := NewTemplateService(newMockTemplateRepo())

	dto, err := svc.Create(context.Background(), CreateTemplateRequest{
		Name: "测试模板",
		Sections: []CreateSectionRequest{
			{Title: "双方", Content: "甲方：<<party_a>>，乙方：<<party_b>>", SortOrder: 1},
			{Title: "无标签", Content: "固定文本", SortOrder: 2},
		},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	if len(dto.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(dto.Sections))
	}
	tags := dto.Sections[0].Tags
	if len(tags) != 2 || tags[0] != "party_a" || tags[1] != "party_b" {
		t.Fatalf("unexpected tags: %v", tags)
	}
	if dto.Sections[1].Tags != nil {
		t.Fatalf("expected no tags for plain section, got %v", dto.Sections[1].Tags)
	}
}

func TestTemplateViewConversion(t *testing.T) {
	repo := newMockTemplateRepo()
	svc := NewTemplateService(repo)

	created, err := svc.Create(context.Background(), CreateTemplateRequest{
		Name: "视图模板",
		Sections: []CreateSectionRequest{
			{Title: "A", Content: "<<x>> 和 <<y>>", SortOrder: 1},
		},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}

	view, err := svc.View(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("view error: %v", err)
	}
	if view.Name != "视图模板" || len(view.Sections) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if len(view.Sections[0].Tags) != 2 {
		t.Fatalf("unexpected tags: %v", view.Sections[0].Tags)
	}
}

func TestTemplateDeleteGuardsSystemTemplate(t *testing.T) {
	repo := newMockTemplateRepo()
	svc := NewTemplateService(repo)

	repo.Create(&model.Template{Name: "预置", IsSystem: true})
	if err := svc.Delete(context.Background(), 1); !errors.Is(err, ErrSystemTemplate) {
		t.Fatalf("expected ErrSystemTemplate, got %v", err)
	}

	if err := svc.Delete(context.Background(), 99); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}
