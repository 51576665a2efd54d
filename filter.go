package webseed

import "regexp"

// SourceFilter excludes sources matching ignore patterns.
type SourceFilter struct {
	exclude []*regexp.Regexp
}

// NewSourceFilter compiles ignore patterns into a filter. Returns
// EINVALID if a pattern does not compile.
func NewSourceFilter(patterns []string) (*SourceFilter, error) {
	f := &SourceFilter{}
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, Errorf(EINVALID, "invalid ignore pattern %q: %v", pattern, err)
		}
		f.exclude = append(f.exclude, re)
	}
	return f, nil
}

// Excluded returns true if the source matches any ignore pattern.
// A nil filter excludes nothing.
func (f *SourceFilter) Excluded(source string) bool {
	if f == nil {
		return false
	}
	for _, re := range f.exclude {
		if re.MatchString(source) {
			return true
		}
	}
	return false
}
