package statemachine

import "testing"

func TestGenerationStateMachineTransitions(t *testing.T) {
	sm := NewGenerationStateMachine()

	allowed := []GenerationTransition{
		{GenerationStatusPending, GenerationStatusSubmitted},
		{GenerationStatusSubmitted, GenerationStatusCompleted},
		{GenerationStatusSubmitted, GenerationStatusFailed},
		{GenerationStatusFailed, GenerationStatusPending},
	}
	for _, tr := range allowed {
		if !sm.CanTransition(tr.From, tr.To) {
			t.Fatalf("expected %s -> %s to be allowed", tr.From, tr.To)
		}
	}

	denied := []GenerationTransition{
		{GenerationStatusPending, GenerationStatusCompleted},
		{GenerationStatusCompleted, GenerationStatusPending},
		{GenerationStatusCompleted, GenerationStatusFailed},
	}
	for _, tr := range denied {
		if sm.CanTransition(tr.From, tr.To) {
			t.Fatalf("expected %s -> %s to be rejected", tr.From, tr.To)
		}
	}
}

func TestIsGenerationTerminal(t *testing.T) {
	if IsGenerationTerminal(GenerationStatusPending) || IsGenerationTerminal(GenerationStatusSubmitted) {
		t.Fatalf("pending/submitted should not be terminal")
	}
	if !IsGenerationTerminal(GenerationStatusCompleted) || !IsGenerationTerminal(GenerationStatusFailed) {
		t.Fatalf("completed/failed should be terminal")
	}
}
