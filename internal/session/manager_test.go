package session

import "testing"

func TestManagerGetOrCreateReusesSession(t *testing.T) {
	m := NewManager()

	a := m.GetOrCreate(1)
	b := m.GetOrCreate(1)
	if a.ID != b.ID {
		t.Fatalf("expected same session for same user")
	}
	if m.Count() != 1 {
		t.Fatalf("expected 1 session, got %d", m.Count())
	}

	c := m.GetOrCreate(2)
	if c.ID == a.ID {
		t.Fatalf("expected distinct sessions for distinct users")
	}
	if m.Count() != 2 {
		t.Fatalf("expected 2 sessions, got %d", m.Count())
	}
}

func TestManagerRemoveByUser(t *testing.T) {
	m := NewManager()
	sess := m.GetOrCreate(1)

	removed, ok := m.RemoveByUser(1)
	if !ok || removed.ID != sess.ID {
		t.Fatalf("expected session to be removed")
	}
	if _, ok := m.GetByUser(1); ok {
		t.Fatalf("expected no session after removal")
	}
	if _, ok := m.Get(sess.ID); ok {
		t.Fatalf("expected session gone from registry")
	}

	if _, ok := m.RemoveByUser(1); ok {
		t.Fatalf("expected second removal to report absence")
	}
}
