package session

import (
	"sort"
	"sync"
	"time"

	"github.com/docassembler/backend/internal/service/statemachine"
)

// TagMapping 标签映射
// SnippetID 与 CustomContent 互斥，任一时刻恰好一个非空
type TagMapping struct {
	TagName       string  `json:"tag_name"`
	SnippetID     *uint   `json:"snippet_id,omitempty"`
	CustomContent *string `json:"custom_content,omitempty"`
}

// SectionView 会话持有的分节视图
type SectionView struct {
	ID    uint     `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
}

// TemplateView 会话持有的模板视图，载入后不可变
type TemplateView struct {
	ID       uint          `json:"id"`
	Name     string        `json:"name"`
	Sections []SectionView `json:"sections"`
}

// Panel 移动端当前激活的面板
type Panel string

const (
	PanelStructure Panel = "structure" // 模板结构面板
	PanelLibrary   Panel = "library"   // 内容库面板
	PanelMapping   Panel = "mapping"   // 标签映射面板
)

// OpResult 操作结果
// 软前置条件不满足时 Applied=false，状态原样保留，便于测试观察
type OpResult struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`
}

func applied() OpResult {
	return OpResult{Applied: true}
}

func skipped(reason string) OpResult {
	return OpResult{Applied: false, Reason: reason}
}

// Session 编辑会话
// 同一用户的并发请求（双开标签页、重复点击）会命中同一个实例，
// 嵌入的互斥锁由服务层在每次操作与快照期间持有
type Session struct {
	sync.Mutex

	ID           string
	UserID       uint
	Status       statemachine.SessionStatus
	Template     *TemplateView
	SelectedTag  string
	Mappings     map[string]TagMapping
	SectionOrder []uint
	ActivePanel  Panel
	UpdatedAt    time.Time
}

// New 创建空会话
func New(id string, userID uint) *Session {
	return &Session{
		ID:          id,
		UserID:      userID,
		Status:      statemachine.SessionStatusIdle,
		Mappings:    make(map[string]TagMapping),
		ActivePanel: PanelStructure,
		UpdatedAt:   time.Now(),
	}
}

// LoadTemplate 载入（或替换）模板
// 分节顺序重置为模板自然顺序，映射表与标签选中一并清空
// 调用方保证模板已合法解析，没有错误路径
func (s *Session) LoadTemplate(view *TemplateView) OpResult {
	s.Template = view
	s.SectionOrder = make([]uint, 0, len(view.Sections))
	for _, section := range view.Sections {
		s.SectionOrder = append(s.SectionOrder, section.ID)
	}
	s.Mappings = make(map[string]TagMapping)
	s.SelectedTag = ""
	s.Status = statemachine.SessionStatusEditing
	s.touch()
	return applied()
}

// ReorderSections 整体替换分节顺序
// 前置条件：newOrder 是当前分节ID的一个排列，由调用方保证，此处不校验
func (s *Session) ReorderSections(newOrder []uint) OpResult {
	if s.Template == nil {
		return skipped("no template loaded")
	}
	order := make([]uint, len(newOrder))
	copy(order, newOrder)
	s.SectionOrder = order
	s.touch()
	return applied()
}

// SelectTag 设置当前选中标签
// 标签此时不必已存在于映射表中，选中先于映射发生
func (s *Session) SelectTag(tagName string) OpResult {
	s.SelectedTag = tagName
	s.touch()
	return applied()
}

// MapSnippet 将当前选中标签映射到内容片段
// 未选中标签时为可观察的 no-op，映射表保持不变
func (s *Session) MapSnippet(snippetID uint) OpResult {
	if s.SelectedTag == "" {
		return skipped("no tag selected")
	}
	id := snippetID
	s.Mappings[s.SelectedTag] = TagMapping{
		TagName:   s.SelectedTag,
		SnippetID: &id,
	}
	s.touch()
	return applied()
}

// SetCustomContent 将指定标签映射到自定义文本
// 直接按标签名寻址，不依赖选中状态；覆盖该标签已有的片段引用
func (s *Session) SetCustomContent(tagName, text string) OpResult {
	content := text
	s.Mappings[tagName] = TagMapping{
		TagName:       tagName,
		CustomContent: &content,
	}
	s.touch()
	return applied()
}

// RemoveMapping 删除标签的映射条目，不存在时为幂等 no-op
func (s *Session) RemoveMapping(tagName string) OpResult {
	if _, ok := s.Mappings[tagName]; !ok {
		return skipped("no mapping for tag")
	}
	delete(s.Mappings, tagName)
	s.touch()
	return applied()
}

// SetActivePanel 切换移动端激活面板
func (s *Session) SetActivePanel(panel Panel) OpResult {
	s.ActivePanel = panel
	s.touch()
	return applied()
}

// CanGenerate 生成门控：已载入模板 且 映射表非空
func (s *Session) CanGenerate() bool {
	return s.Template != nil && len(s.Mappings) > 0
}

// RequestGenerate 校验生成门控
// 通过时不改变粗粒度状态，一次性信号由上层发布
func (s *Session) RequestGenerate() OpResult {
	if !s.CanGenerate() {
		if s.Template == nil {
			return skipped("no template loaded")
		}
		return skipped("mapping table is empty")
	}
	s.touch()
	return applied()
}

// MappingList 将映射表铺平为列表，按标签名排序保证输出稳定
func (s *Session) MappingList() []TagMapping {
	list := make([]TagMapping, 0, len(s.Mappings))
	for _, m := range s.Mappings {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].TagName < list[j].TagName
	})
	return list
}

// Clear 销毁会话内容，回到 idle
func (s *Session) Clear() {
	s.Template = nil
	s.SelectedTag = ""
	s.Mappings = make(map[string]TagMapping)
	s.SectionOrder = nil
	s.Status = statemachine.SessionStatusIdle
	s.touch()
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}
