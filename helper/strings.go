package helper

import (
	"strings"
	"unicode"
)

// Underscore converts a CamelCase identifier to snake_case, keeping acronym
// runs together: "ArticleID" becomes "article_id", not "article_i_d".
func Underscore(s string) string {
	var b strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
