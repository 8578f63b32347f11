package service

import "regexp"

// 模板正文中的标签写作 <<tag_name>>
var tagPattern = regexp.MustCompile(`<<([A-Za-z0-9_]+)>>`)

// ExtractTags 从分节正文中提取标签名，去重并保持首次出现顺序
func ExtractTags(content string) []string {
	matches := tagPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	return tags
}
