package service

import "testing"

func TestExtractTags(t *testing.T) {
	content := "甲方：<<party_a>>，乙方：<<party_b>>。\n付款期限：<<deadline>>，甲方盖章：<<party_a>>"
	tags := ExtractTags(content)

	want := []string{"party_a", "party_b", "deadline"}
	if len(tags) != len(want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	for i, tag := range want {
		if tags[i] != tag {
			t.Fatalf("expected %v, got %v", want, tags)
		}
	}
}

func TestExtractTagsNoMatch(t *testing.T) {
	if tags := ExtractTags("没有占位符的正文 <party_a> <<>>"); tags != nil {
		t.Fatalf("expected nil, got %v", tags)
	}
}
