package utils

import (
	"strings"
)

// WordFilter remembers which words it has already let through.
// It is not safe for concurrent use.
type WordFilter struct {
	seenWords map[string]struct{}
}

// NewWordFilter creates an empty filter. Any words passed in are treated as
// already seen.
func NewWordFilter(exclude ...string) *WordFilter {
	f := &WordFilter{seenWords: make(map[string]struct{}, len(exclude))}
	for _, w := range exclude {
		f.seenWords[strings.ToLower(w)] = struct{}{}
	}
	return f
}

// ShouldInclude reports whether word is new, case-insensitively, and marks
// it as seen.
func (f *WordFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if _, ok := f.seenWords[lowerWord]; ok {
		return false
	}
	f.seenWords[lowerWord] = struct{}{}
	return true
}
