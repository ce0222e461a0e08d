package imports

import (
	"regexp"
	"strings"

	"github.com/grovetools/kebabify/naming"
)

// Each pattern captures the specifier in group 1 (double quoted) or group 2
// (single quoted).
var specifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bfrom\s*(?:"([^"\n]*)"|'([^'\n]*)')`),
	regexp.MustCompile(`\brequire\(\s*(?:"([^"\n]*)"|'([^'\n]*)')\s*\)`),
	regexp.MustCompile(`\bimport\(\s*(?:"([^"\n]*)"|'([^'\n]*)')\s*\)`),
}

// RewriteSpecifier returns the kebab-case form of a relative or absolute
// import specifier. Package specifiers are returned unchanged.
func RewriteSpecifier(spec string) string {
	if !strings.HasPrefix(spec, ".") && !strings.HasPrefix(spec, "/") {
		return spec
	}

	segments := strings.Split(spec, "/")
	for i, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		if strings.Contains(seg, ".") {
			segments[i] = naming.ConvertFileName(seg)
		} else {
			segments[i] = naming.ToKebabCase(seg)
		}
	}
	return strings.Join(segments, "/")
}

// RewriteSource rewrites every recognized specifier in src and reports
// whether anything changed.
func RewriteSource(src string) (string, bool) {
	changed := false
	for _, re := range specifierPatterns {
		var n int
		src, n = rewriteMatches(re, src)
		if n > 0 {
			changed = true
		}
	}
	return src, changed
}

// rewriteMatches replaces the captured specifier of every match of re and
// returns the number of specifiers that changed.
func rewriteMatches(re *regexp.Regexp, src string) (string, int) {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, 0
	}

	var b strings.Builder
	last, changed := 0, 0
	for _, m := range matches {
		start, end := m[2], m[3]
		if start < 0 {
			start, end = m[4], m[5]
		}
		spec := src[start:end]
		rewritten := RewriteSpecifier(spec)
		if rewritten == spec {
			continue
		}
		b.WriteString(src[last:start])
		b.WriteString(rewritten)
		last = end
		changed++
	}
	if changed == 0 {
		return src, 0
	}
	b.WriteString(src[last:])
	return b.String(), changed
}
