package common

import (
	"path/filepath"
	"sort"
	"strings"
)

// ConfigPath resolves the catalog config location: relative paths are
// anchored at the repository root.
func ConfigPath(root, config string) string {
	if filepath.IsAbs(config) {
		return config
	}
	return filepath.Join(root, config)
}

// NormalizeDomain performs basic cleanup on a user-supplied domain to
// handle common copy-paste issues. Removes whitespace, the protocol
// prefix, one leading "www.", and anything after the first slash.
// Example: "https://WWW.Example.com/vote" -> "example.com"
func NormalizeDomain(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.TrimPrefix(cleaned, "https://")
	cleaned = strings.TrimPrefix(cleaned, "http://")
	if i := strings.IndexByte(cleaned, '/'); i >= 0 {
		cleaned = cleaned[:i]
	}
	cleaned = strings.TrimPrefix(cleaned, "www.")
	return strings.TrimSpace(cleaned)
}

// NormalizeTokens trims, lowercases, deduplicates (first occurrence
// wins), and sorts a list of free-text tokens. Blank entries are
// dropped. With stripWWW set, one leading "www." is removed from each
// token, which is the domain-list behavior.
func NormalizeTokens(values []string, stripWWW bool) []string {
	seen := make(map[string]bool, len(values))
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		token := strings.ToLower(strings.TrimSpace(value))
		if stripWWW {
			token = strings.TrimPrefix(token, "www.")
		}
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		normalized = append(normalized, token)
	}
	sort.Strings(normalized)
	return normalized
}

// SplitCSV splits a comma-separated field into trimmed, non-empty parts.
func SplitCSV(s string) []string {
	var parts []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts = append(parts, part)
	}
	return parts
}

// SplitLines splits a multi-line field into trimmed, non-empty lines.
func SplitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
