package util

import (
	"strings"
)

// ShellQuote quotes a string for safe use in shell commands
// Simple implementation: wraps in single quotes and escapes embedded single quotes
func ShellQuote(s string) string {
	// Replace single quotes with '\''
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}

// ShellEscape quotes s only when the shell would otherwise split or expand it.
func ShellEscape(s string) string {
	if needsQuoting(s) {
		return ShellQuote(s)
	}
	return s
}

// ShellJoin renders argv as a copy-pasteable command line.
func ShellJoin(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		parts[i] = ShellEscape(a)
	}
	return strings.Join(parts, " ")
}

// needsQuoting checks if a string needs shell quoting
func needsQuoting(s string) bool {
	// Needs quoting if it contains spaces, special chars, or is empty
	if s == "" {
		return true
	}
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '"' || r == '\'' ||
			r == '$' || r == '\\' || r == '`' || r == '|' || r == '&' ||
			r == ';' || r == '(' || r == ')' || r == '<' || r == '>' ||
			r == '*' || r == '?' {
			return true
		}
	}
	return false
}
