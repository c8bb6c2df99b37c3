package process

import (
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnv replaces ${env.KEY} expressions with getenv(KEY). Keys are
// letters, digits and underscores; anything else leaves the expression
// untouched, as does a missing closing brace.
func expandEnv(value string, getenv func(string) string) string {
	if !strings.Contains(value, envPrefix) {
		return value
	}
	var out strings.Builder
	for {
		start := strings.Index(value, envPrefix)
		if start < 0 {
			out.WriteString(value)
			return out.String()
		}
		out.WriteString(value[:start])
		rest := value[start+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			out.WriteString(value[start:])
			return out.String()
		}
		key := rest[:end]
		if !isEnvKey(key) {
			out.WriteString(envPrefix)
			value = rest
			continue
		}
		out.WriteString(getenv(key))
		value = rest[end+1:]
	}
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
