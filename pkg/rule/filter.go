package rule

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// ErrUnknownCheck is returned for a check name that is not in the catalogue.
var ErrUnknownCheck = errors.New("unknown check")

// FilterConfig specifies include and exclude patterns for check filtering.
type FilterConfig struct {
	Include []string // Regex patterns - only matching checks included
	Exclude []string // Regex patterns - matching checks excluded
}

// ParsePatterns splits a comma-separated string into individual patterns.
// Patterns are trimmed of whitespace.
func ParsePatterns(patterns string) []string {
	if patterns == "" {
		return []string{}
	}
	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ParseNames parses a comma-separated list of check names, as given to
// --disable. Empty items are ignored. Every unknown name is listed in the
// returned error, which wraps ErrUnknownCheck.
func ParseNames(names string) ([]types.Kind, error) {
	var kinds []types.Kind
	var invalid []string
	for _, name := range ParsePatterns(names) {
		kind, ok := types.ParseKind(name)
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		kinds = append(kinds, kind)
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCheck, strings.Join(invalid, ", "))
	}
	return kinds, nil
}

// KindSet turns a list of kinds into the set form the linter filters with.
func KindSet(kinds []types.Kind) map[types.Kind]bool {
	set := make(map[types.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// Filter applies include and exclude patterns to checks by name.
// Include is applied first, then exclude.
// Empty include means "include all".
// Returns error if any pattern is invalid regex.
func Filter(checks []*types.Check, config FilterConfig) ([]*types.Check, error) {
	if len(checks) == 0 {
		return checks, nil
	}

	include, err := compileAll(config.Include)
	if err != nil {
		return nil, err
	}
	exclude, err := compileAll(config.Exclude)
	if err != nil {
		return nil, err
	}

	filtered := make([]*types.Check, 0, len(checks))
	for _, c := range checks {
		if len(include) > 0 && !matchesAny(c.Name, include) {
			continue
		}
		if matchesAny(c.Name, exclude) {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}

// Disabled returns the kinds of all checks that are not in enabled.
func Disabled(enabled []*types.Check) []types.Kind {
	on := make(map[types.Kind]bool, len(enabled))
	for _, c := range enabled {
		on[c.Kind] = true
	}
	var off []types.Kind
	for _, k := range types.AllKinds() {
		if !on[k] {
			off = append(off, k)
		}
	}
	return off
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	var res []*regexp.Regexp
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		res = append(res, re)
	}
	return res, nil
}

func matchesAny(name string, regexes []*regexp.Regexp) bool {
	for _, re := range regexes {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}
