package category

import (
	"strings"
)

// DefaultItemCategory is assigned when no keyword group matches.
const DefaultItemCategory = "General"

// CategorizeItem classifies a free-text line-item description into a category
// label. Pure function: case-insensitive substring containment against the
// ordered keyword groups, first group wins.
func CategorizeItem(description string) string {
	text := strings.ToLower(description)
	for _, rule := range itemRules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Label
			}
		}
	}
	return DefaultItemCategory
}
