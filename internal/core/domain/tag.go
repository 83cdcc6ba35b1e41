package domain

import "strings"

type Tag struct {
	ID     uint64
	UserID uint64
	Name   string
}

// SplitTagNames turns a comma-separated tag string into a clean name list:
// fragments are trimmed, empty ones dropped, duplicates keep their first
// occurrence.
func SplitTagNames(input string) []string {
	parts := strings.Split(input, ",")
	names := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// NormalizeTagNames applies the same trim/dedupe rules to an already split
// list, as received by the REST surface.
func NormalizeTagNames(input []string) []string {
	names := make([]string, 0, len(input))
	seen := make(map[string]struct{}, len(input))
	for _, part := range input {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
