package entity

import (
	"fmt"
	"strings"
)

// Language selects the string table used for every label of the view.
type Language string

const (
	LanguageThai    Language = "th" // primary
	LanguageEnglish Language = "en" // secondary
)

// Toggle returns the other supported language.
func (l Language) Toggle() Language {
	if l == LanguageThai {
		return LanguageEnglish
	}
	return LanguageThai
}

// ParseLanguage accepts "th" or "en", case-insensitively.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageThai:
		return LanguageThai, nil
	case LanguageEnglish:
		return LanguageEnglish, nil
	default:
		return "", fmt.Errorf("unsupported language %q", s)
	}
}
