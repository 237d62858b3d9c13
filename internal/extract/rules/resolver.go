package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// ResolveName resolves a name expression as it appears literally in source to
// its string value. A quoted literal is unquoted and returned as-is. A
// qualified identifier such as ToolName.ECHO is looked up in an enum-like
// block in the source text. When no definition is found, the member name is
// lowercased as a best-effort fallback; resolved reports whether the value
// came from an actual definition rather than the fallback transform.
func ResolveName(expr, src string) (name string, resolved bool) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", false
	}

	if strings.HasPrefix(expr, `"`) || strings.HasPrefix(expr, "'") {
		return strings.Trim(expr, `"'`), true
	}

	if idx := strings.Index(expr, "."); idx > 0 {
		group := expr[:idx]
		member := expr[idx+1:]

		if value, ok := lookupEnumMember(group, member, src); ok {
			return value, true
		}
		// Best-effort: UPPER_SNAKE members usually mirror the literal value.
		return strings.ToLower(member), false
	}

	return expr, true
}

// lookupEnumMember searches src for an enum-like block named group and, within
// it, an explicit string assignment to member.
func lookupEnumMember(group, member, src string) (string, bool) {
	blockRe, err := regexp.Compile(`(?s)enum\s+` + regexp.QuoteMeta(group) + `\s*\{([^}]+)\}`)
	if err != nil {
		return "", false
	}
	block := blockRe.FindStringSubmatch(src)
	if block == nil {
		return "", false
	}

	valueRe, err := regexp.Compile(regexp.QuoteMeta(member) + `\s*=\s*["']([^"']+)["']`)
	if err != nil {
		return "", false
	}
	if m := valueRe.FindStringSubmatch(block[1]); m != nil {
		return m[1], true
	}
	return "", false
}

// compileQuoted builds a regexp with QuoteMeta applied to the dynamic part.
// Used by rules that search for registrations of a previously captured
// identifier.
func compileQuoted(format, ident string) (*regexp.Regexp, error) {
	return regexp.Compile(fmt.Sprintf(format, regexp.QuoteMeta(ident)))
}
