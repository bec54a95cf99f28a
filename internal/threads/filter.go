package threads

import (
	"strings"
)

// KeywordFilter matches posts whose text or topic tag mentions any keyword,
// ignoring case.
type KeywordFilter struct {
	keywords []string
}

func NewKeywordFilter(keywords []string) *KeywordFilter {
	normalized := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			normalized = append(normalized, keyword)
		}
	}
	return &KeywordFilter{keywords: normalized}
}

// Matches reports whether the post is relevant. An empty filter matches all.
func (f *KeywordFilter) Matches(content, topicTag string) bool {
	if len(f.keywords) == 0 {
		return true
	}

	haystack := strings.ToLower(content + " " + topicTag)
	for _, keyword := range f.keywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}

func (f *KeywordFilter) Keywords() []string {
	return append([]string(nil), f.keywords...)
}
