package ir

import (
	"strings"
	"unicode"
)

// Snake converts a schema name to its canonical snake_case form. The result depends only
// on the input string.
//
//	firstName  -> first_name
//	LastName   -> last_name
//	UPPER_CASE -> upper_case
//	HTTPServer -> http_server
func Snake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 4)
	sep := false
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			sep = b.Len() > 0
			continue
		}
		if unicode.IsUpper(r) && i > 0 && b.Len() > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				sep = true
			}
		}
		if sep {
			b.WriteByte('_')
			sep = false
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

var initialisms = map[string]string{
	"api":  "API",
	"id":   "ID",
	"http": "HTTP",
	"json": "JSON",
	"llm":  "LLM",
	"sql":  "SQL",
	"url":  "URL",
	"uuid": "UUID",
	"xml":  "XML",
}

// Pascal converts a schema name to an exported Go identifier: first_name -> FirstName,
// user_id -> UserID. The result is never empty and never starts with a digit.
func Pascal(s string) string {
	var b strings.Builder
	for part := range strings.SplitSeq(Snake(s), "_") {
		if part == "" {
			continue
		}
		if up, ok := initialisms[part]; ok {
			b.WriteString(up)
			continue
		}
		r := []rune(part)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	out := b.String()
	if out == "" || unicode.IsDigit([]rune(out)[0]) {
		return "X" + out
	}
	return out
}
