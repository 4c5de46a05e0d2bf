// Package subst implements {{ variable }} placeholder substitution for
// template names, content, and string conditions. It is deliberately
// not a general-purpose template language: only simple identifier
// lookup is supported.
package subst

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var tokenPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// Expand replaces every {{ name }} placeholder whose name resolves in
// vars. Unresolved placeholders are left untouched; cross-validation
// is responsible for flagging them ahead of rendering.
func Expand(s string, vars map[string]interface{}) string {
	return tokenPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := tokenPattern.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			return match
		}
		return FormatValue(value)
	})
}

// Tokens returns the distinct placeholder names in s, in order of
// first appearance.
func Tokens(s string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, match := range tokenPattern.FindAllStringSubmatch(s, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			names = append(names, match[1])
		}
	}
	return names
}

// HasTokens reports whether s contains any placeholder.
func HasTokens(s string) bool {
	return tokenPattern.MatchString(s)
}

// FormatValue renders a resolved variable value as text for
// substitution into names and content.
func FormatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case []string:
		return strings.Join(v, ", ")
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = FormatValue(item)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
