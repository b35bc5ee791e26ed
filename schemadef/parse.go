package schemadef

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseType parses a textual descriptor. It never fails: text it cannot classify becomes
// KindOther carrying the original text.
//
//	int?        optional(primitive int)
//	Item[]      list(ref Item)
//	string[][]  list(list(primitive string))
//	map<a, b>   other
func ParseType(text string) *TypeDesc {
	s := strings.TrimSpace(text)
	switch {
	case s == "":
		return &TypeDesc{Kind: KindPrimitive}
	case strings.HasSuffix(s, "?"):
		return &TypeDesc{Kind: KindOptional, Elem: ParseType(s[:len(s)-1])}
	case strings.HasSuffix(s, "[]"):
		return &TypeDesc{Kind: KindList, Elem: ParseType(s[:len(s)-2])}
	case !isWord(s):
		return &TypeDesc{Kind: KindOther, Tag: s}
	case startsUpper(s):
		return &TypeDesc{Kind: KindRef, Tag: s}
	default:
		return &TypeDesc{Kind: KindPrimitive, Tag: s}
	}
}

func isWord(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
