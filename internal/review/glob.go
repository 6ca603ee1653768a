package review

import (
	"regexp"
	"strings"
)

// compileGlob translates a glob pattern into an anchored regular expression.
// `**` matches any run of characters including path separators, `*` matches
// within one path segment, `?` matches exactly one non-separator character,
// and every other regexp metacharacter is escaped. Patterns apply to the
// full relative filename.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				sb.WriteString(".*")
				i++
			} else {
				sb.WriteString("[^/]*")
			}
		case '?':
			sb.WriteString("[^/]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(runes[i])))
		}
	}

	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

// matchGlob reports whether name matches the glob pattern. Unparseable
// patterns never match.
func matchGlob(pattern, name string) bool {
	re, err := compileGlob(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(name)
}

// matchAny reports whether name matches at least one of the patterns.
func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if matchGlob(pattern, name) {
			return true
		}
	}
	return false
}
