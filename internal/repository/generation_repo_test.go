package repository

import (
	"errors"
	"testing"

	"github.com/docassembler/backend/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newGenerationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(&model.GenerationRequest{}); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func TestGenerationRepositoryCreateAndGet(t *testing.T) {
	db := newGenerationTestDB(t)
	repo := NewGenerationRequestRepository(db)

	req := &model.GenerationRequest{
		SessionID:  "sess-1",
		UserID:     7,
		TemplateID: 3,
		Payload:    `{"template_id":3}`,
		Status:     "pending",
	}
	if err := repo.Create(req); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := repo.Get(req.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.SessionID != "sess-1" || got.Status != "pending" {
		t.Fatalf("unexpected request: %+v", got)
	}
}

func TestGenerationRepositoryGetNotFound(t *testing.T) {
	db := newGenerationTestDB(t)
	repo := NewGenerationRequestRepository(db)

	if _, err := repo.Get(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerationRepositorySaveStatus(t *testing.T) {
	db := newGenerationTestDB(t)
	repo := NewGenerationRequestRepository(db)

	req := &model.GenerationRequest{SessionID: "sess-1", UserID: 7, Status: "pending"}
	if err := repo.Create(req); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	req.Status = "submitted"
	if err := repo.Save(req); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := repo.Get(req.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Status != "submitted" {
		t.Fatalf("expected submitted, got %s", got.Status)
	}
}

func TestGenerationRepositoryGetByUserID(t *testing.T) {
	db := newGenerationTestDB(t)
	repo := NewGenerationRequestRepository(db)

	for _, req := range []*model.GenerationRequest{
		{SessionID: "s1", UserID: 1, Status: "pending"},
		{SessionID: "s2", UserID: 2, Status: "pending"},
		{SessionID: "s3", UserID: 1, Status: "completed"},
	} {
		if err := repo.Create(req); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	reqs, err := repo.GetByUserID(1)
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(reqs))
	}
	// 按 id 倒序
	if reqs[0].SessionID != "s3" {
		t.Fatalf("expected newest first, got %s", reqs[0].SessionID)
	}
}
