package auth

import "strings"

// WildcardSuffix marks a whitelist entry as a prefix pattern.
const WildcardSuffix = "/**"

// Whitelist is the set of request paths exempt from authentication. Entries
// are either exact paths or prefix patterns ending in "/**". The list is
// built at process start and read-only afterwards; matching is
// order-independent.
type Whitelist []string

// IsPublic reports whether path is exempt from authentication. A prefix
// pattern matches the bare prefix itself and any path that continues with a
// "/" segment boundary, so "/api/items/lost-item/**" covers
// "/api/items/lost-item" and "/api/items/lost-item/42" but not
// "/api/items/lost-items".
func (w Whitelist) IsPublic(path string) bool {
	for _, entry := range w {
		if strings.HasSuffix(entry, WildcardSuffix) {
			prefix := strings.TrimSuffix(entry, WildcardSuffix)
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == entry {
			return true
		}
	}
	return false
}
