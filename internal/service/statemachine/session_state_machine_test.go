package statemachine

import "testing"

func TestSessionStateMachineTransitions(t *testing.T) {
	sm := NewSessionStateMachine()

	if !sm.CanTransition(SessionStatusIdle, SessionStatusEditing) {
		t.Fatalf("expected idle -> editing to be allowed")
	}
	if !sm.CanTransition(SessionStatusEditing, SessionStatusIdle) {
		t.Fatalf("expected editing -> idle to be allowed")
	}
	if sm.CanTransition(SessionStatusIdle, SessionStatusIdle) {
		t.Fatalf("expected same-state transition to be rejected")
	}
	if sm.CanTransition(SessionStatusEditing, SessionStatusEditing) {
		t.Fatalf("expected same-state transition to be rejected")
	}
}

func TestSessionStateMachineValidateTransition(t *testing.T) {
	sm := NewSessionStateMachine()

	if err := sm.ValidateTransition(SessionStatusIdle, SessionStatusEditing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := sm.ValidateTransition(SessionStatusIdle, SessionStatusIdle)
	if err == nil {
		t.Fatalf("expected error for invalid transition")
	}
	if _, ok := err.(*InvalidSessionStateTransitionError); !ok {
		t.Fatalf("expected InvalidSessionStateTransitionError, got %T", err)
	}
}
