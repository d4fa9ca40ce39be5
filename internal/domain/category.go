package domain

import "strings"

// Category is one of the four fixed filing destinations in the vault.
type Category string

const (
	CategoryPeople   Category = "People"
	CategoryProjects Category = "Projects"
	CategoryIdeas    Category = "Ideas"
	CategoryAdmin    Category = "Admin"
)

// Categories lists all valid categories in folder order.
var Categories = []Category{CategoryPeople, CategoryProjects, CategoryIdeas, CategoryAdmin}

// ParseCategory matches free text to a category. Matching is
// case-insensitive and accepts unambiguous prefixes ("proj" -> Projects),
// so clarification replies like "ideas" or "adm" resolve directly.
func ParseCategory(text string) (Category, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return "", false
	}
	for _, cat := range Categories {
		name := strings.ToLower(string(cat))
		if name == text || strings.HasPrefix(name, text) {
			return cat, true
		}
	}
	return "", false
}

// Valid reports whether c is one of the four categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPeople, CategoryProjects, CategoryIdeas, CategoryAdmin:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
