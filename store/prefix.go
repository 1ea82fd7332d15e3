package store

import (
	"strings"
)

// Prefixer returns a key builder for one namespace of the database. Parts
// are joined to the prefix with "/".
func Prefixer(prefix string) func(parts ...string) []byte {
	return func(parts ...string) []byte {
		return []byte(strings.Join(append([]string{prefix}, parts...), "/"))
	}
}
