package session

import (
	"testing"

	"github.com/docassembler/backend/internal/service/statemachine"
)

func contractTemplate() *TemplateView {
	return &TemplateView{
		ID:   1,
		Name: "服务合同",
		Sections: []SectionView{
			{ID: 10, Title: "甲方信息", Tags: []string{"party_a"}},
			{ID: 11, Title: "付款条款", Tags: []string{"payment_terms", "deadline"}},
		},
	}
}

func TestLoadTemplateResetsDependentState(t *testing.T) {
	sess := New("s-1", 1)
	sess.LoadTemplate(contractTemplate())

	// 先制造一些脏状态
	sess.SelectTag("party_a")
	sess.MapSnippet(100)
	sess.SetCustomContent("deadline", "2026-12-31")
	sess.ReorderSections([]uint{11, 10})

	next := &TemplateView{
		ID:   2,
		Name: "保密协议",
		Sections: []SectionView{
			{ID: 20, Title: "条款", Tags: []string{"term"}},
			{ID: 21, Title: "签署", Tags: []string{"signature"}},
			{ID: 22, Title: "附件", Tags: []string{"appendix"}},
		},
	}
	res := sess.LoadTemplate(next)
	if !res.Applied {
		t.Fatalf("expected LoadTemplate to apply")
	}
	if len(sess.Mappings) != 0 {
		t.Fatalf("expected empty mapping table, got %d entries", len(sess.Mappings))
	}
	if sess.SelectedTag != "" {
		t.Fatalf("expected tag selection to be cleared, got %q", sess.SelectedTag)
	}
	wantOrder := []uint{20, 21, 22}
	if len(sess.SectionOrder) != len(wantOrder) {
		t.Fatalf("unexpected section order: %v", sess.SectionOrder)
	}
	for i, id := range wantOrder {
		if sess.SectionOrder[i] != id {
			t.Fatalf("expected natural order %v, got %v", wantOrder, sess.SectionOrder)
		}
	}
	if sess.Status != statemachine.SessionStatusEditing {
		t.Fatalf("expected editing status, got %s", sess.Status)
	}
}

func TestMappingExclusivity(t *testing.T) {
	sess := New("s-1", 1)
	sess.LoadTemplate(contractTemplate())

	// 任意 MapSnippet/SetCustomContent 序列之后，每个标签恰好一个值非空
	sess.SelectTag("party_a")
	sess.MapSnippet(100)
	sess.SetCustomContent("party_a", "甲方：某某公司")
	sess.SelectTag("party_a")
	sess.MapSnippet(101)

	m := sess.Mappings["party_a"]
	if m.TagName != "party_a" {
		t.Fatalf("mapping key must equal TagName field, got %q", m.TagName)
	}
	if m.SnippetID == nil || m.CustomContent != nil {
		t.Fatalf("expected snippet mapping only, got %+v", m)
	}
	if *m.SnippetID != 101 {
		t.Fatalf("expected snippet 101, got %d", *m.SnippetID)
	}

	sess.SetCustomContent("party_a", "自定义文本")
	m = sess.Mappings["party_a"]
	if m.CustomContent == nil || m.SnippetID != nil {
		t.Fatalf("expected custom mapping only, got %+v", m)
	}
}

func TestMapSnippetWithoutSelectionIsNoop(t *testing.T) {
	sess := New("s-1", 1)
	sess.LoadTemplate(contractTemplate())

	res := sess.MapSnippet(100)
	if res.Applied {
		t.Fatalf("expected no-op without tag selection")
	}
	if res.Reason == "" {
		t.Fatalf("expected no-op reason to be observable")
	}
	if len(sess.Mappings) != 0 {
		t.Fatalf("expected mapping table unchanged, got %d entries", len(sess.Mappings))
	}
}

func TestRemoveMappingIdempotent(t *testing.T) {
	sess := New("s-1", 1)
	sess.LoadTemplate(contractTemplate())
	sess.SetCustomContent("party_a", "文本")

	if res := sess.RemoveMapping("party_a"); !res.Applied {
		t.Fatalf("expected first remove to apply")
	}
	if res := sess.RemoveMapping("party_a"); res.Applied {
		t.Fatalf("expected second remove to be a no-op")
	}
	if len(sess.Mappings) != 0 {
		t.Fatalf("expected empty mapping table")
	}
}

func TestRequestGenerateGuard(t *testing.T) {
	sess := New("s-1", 1)

	// 无模板
	if res := sess.RequestGenerate(); res.Applied {
		t.Fatalf("expected generate to be blocked without template")
	}

	// 有模板但映射表为空
	sess.LoadTemplate(contractTemplate())
	if res := sess.RequestGenerate(); res.Applied {
		t.Fatalf("expected generate to be blocked with empty mapping table")
	}

	// 门控满足
	sess.SetCustomContent("party_a", "文本")
	if res := sess.RequestGenerate(); !res.Applied {
		t.Fatalf("expected generate to proceed: %+v", res)
	}
	if sess.Status != statemachine.SessionStatusEditing {
		t.Fatalf("generate must not change coarse state, got %s", sess.Status)
	}
}

func TestReorderSectionsRequiresTemplate(t *testing.T) {
	sess := New("s-1", 1)
	if res := sess.ReorderSections([]uint{1, 2}); res.Applied {
		t.Fatalf("expected reorder to be a no-op without template")
	}

	sess.LoadTemplate(contractTemplate())
	if res := sess.ReorderSections([]uint{11, 10}); !res.Applied {
		t.Fatalf("expected reorder to apply")
	}
	if sess.SectionOrder[0] != 11 || sess.SectionOrder[1] != 10 {
		t.Fatalf("unexpected order: %v", sess.SectionOrder)
	}
}

func TestEditingScenario(t *testing.T) {
	// 规格场景：载入 -> 选中映射 -> 自定义文本 -> 删除 -> 换模板
	sess := New("s-1", 1)

	tpl := &TemplateView{
		ID:   1,
		Name: "模板",
		Sections: []SectionView{
			{ID: 1, Title: "A", Tags: []string{"x"}},
			{ID: 2, Title: "B", Tags: []string{"y"}},
		},
	}
	sess.LoadTemplate(tpl)
	if len(sess.Mappings) != 0 || len(sess.SectionOrder) != 2 {
		t.Fatalf("unexpected initial state")
	}

	sess.SelectTag("x")
	sess.MapSnippet(1)
	if m := sess.Mappings["x"]; m.SnippetID == nil || *m.SnippetID != 1 {
		t.Fatalf("expected x -> snippet 1, got %+v", m)
	}

	sess.SetCustomContent("y", "Hello")
	if len(sess.Mappings) != 2 {
		t.Fatalf("expected 2 mappings, got %d", len(sess.Mappings))
	}
	if m := sess.Mappings["y"]; m.CustomContent == nil || *m.CustomContent != "Hello" {
		t.Fatalf("expected y -> custom text, got %+v", m)
	}

	sess.RemoveMapping("x")
	if _, ok := sess.Mappings["x"]; ok {
		t.Fatalf("expected x mapping removed")
	}
	if len(sess.Mappings) != 1 {
		t.Fatalf("expected 1 mapping, got %d", len(sess.Mappings))
	}

	next := &TemplateView{
		ID:       2,
		Name:     "新模板",
		Sections: []SectionView{{ID: 9, Title: "C", Tags: []string{"z"}}},
	}
	sess.LoadTemplate(next)
	if len(sess.Mappings) != 0 {
		t.Fatalf("expected mapping table cleared on template load")
	}
	if len(sess.SectionOrder) != 1 || sess.SectionOrder[0] != 9 {
		t.Fatalf("expected order from new template, got %v", sess.SectionOrder)
	}
}

func TestMappingListStableOrder(t *testing.T) {
	sess := New("s-1", 1)
	sess.LoadTemplate(contractTemplate())
	sess.SetCustomContent("deadline", "2026-12-31")
	sess.SetCustomContent("party_a", "甲方")
	sess.SetCustomContent("payment_terms", "月结")

	list := sess.MappingList()
	if len(list) != 3 {
		t.Fatalf("expected 3 mappings, got %d", len(list))
	}
	want := []string{"deadline", "party_a", "payment_terms"}
	for i, tag := range want {
		if list[i].TagName != tag {
			t.Fatalf("expected sorted order %v, got %+v", want, list)
		}
	}
}

func TestClearTearsDownToIdle(t *testing.T) {
	sess := New("s-1", 1)
	sess.LoadTemplate(contractTemplate())
	sess.SetCustomContent("party_a", "文本")

	sess.Clear()
	if sess.Status != statemachine.SessionStatusIdle {
		t.Fatalf("expected idle status after clear, got %s", sess.Status)
	}
	if sess.Template != nil || len(sess.Mappings) != 0 || sess.SectionOrder != nil {
		t.Fatalf("expected empty session after clear")
	}
}

func TestCanGenerateMatchesRequestGuard(t *testing.T) {
	s := New("s1", 1)

	// RequestGenerate 的门控以 CanGenerate 为准，两者不允许分叉
	if s.CanGenerate() {
		t.Fatalf("expected CanGenerate false without template")
	}
	if res := s.RequestGenerate(); res.Applied {
		t.Fatalf("expected generate to be blocked without template")
	}

	s.LoadTemplate(&TemplateView{ID: 1, Name: "模板", Sections: []SectionView{{ID: 1, Title: "A", Tags: []string{"x"}}}})
	if s.CanGenerate() {
		t.Fatalf("expected CanGenerate false with empty mapping table")
	}
	if res := s.RequestGenerate(); res.Applied {
		t.Fatalf("expected generate to be blocked with empty mapping table")
	}

	s.SetCustomContent("x", "文本")
	if !s.CanGenerate() {
		t.Fatalf("expected CanGenerate true")
	}
	if res := s.RequestGenerate(); !res.Applied {
		t.Fatalf("expected generate to proceed, got %+v", res)
	}
}
