package naming

import (
	"strings"
	"unicode/utf8"
)

type charClass int

const (
	classOther charClass = iota
	classLower
	classUpper
	classDigit
)

func classify(b byte) charClass {
	switch {
	case b >= 'a' && b <= 'z':
		return classLower
	case b >= 'A' && b <= 'Z':
		return classUpper
	case b >= '0' && b <= '9':
		return classDigit
	default:
		return classOther
	}
}

// ToKebabCase returns the kebab-case form of s. It never fails.
func ToKebabCase(s string) string {
	if s == "" {
		return ""
	}
	if utf8.RuneCountInString(s) == 1 {
		return strings.ToLower(s)
	}
	if strings.Contains(s, "-") && !hasUpper(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 4)

	prev := classOther
	for i := 0; i < len(s); i++ {
		cur := classify(s[i])
		if i > 0 && isBoundary(prev, cur, s, i) {
			b.WriteByte('-')
		}
		b.WriteByte(s[i])
		prev = cur
	}

	return strings.ToLower(b.String())
}

// isBoundary reports whether a hyphen belongs between s[i-1] and s[i].
func isBoundary(prev, cur charClass, s string, i int) bool {
	if cur != classUpper {
		return false
	}
	switch prev {
	case classLower, classDigit:
		return true
	case classUpper:
		return i+1 < len(s) && classify(s[i+1]) == classLower
	}
	return false
}

func hasUpper(s string) bool {
	for i := 0; i < len(s); i++ {
		if classify(s[i]) == classUpper {
			return true
		}
	}
	return false
}

// SplitExt splits a file name into its stem and its final extension.
// The extension runs from the last '.' to the end and is empty when the
// name has no dot.
func SplitExt(name string) (stem, ext string) {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return name, ""
	}
	return name[:idx], name[idx:]
}

// ConvertFileName converts the stem of name and reattaches its extension
// unchanged, so "BazQux.ts" becomes "baz-qux.ts".
func ConvertFileName(name string) string {
	stem, ext := SplitExt(name)
	return ToKebabCase(stem) + ext
}
