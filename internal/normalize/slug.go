package normalize

import (
	"regexp"
	"strings"
)

var (
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

	// 底線與非 ASCII 字元一併移除，確保結果符合 slugPattern
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// Slugify 由標題產生 URL 安全的 slug，例如 "My Event!!  2025" -> "my-event-2025"。
// 標題不含任何英數字時回傳空字串。
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.TrimSpace(s)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespaceRuns.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ValidSlug 檢查 slug 是否符合 ^[a-z0-9]+(-[a-z0-9]+)*$
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
