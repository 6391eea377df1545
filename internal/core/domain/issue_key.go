package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var issueKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-[0-9]+$`)

// NormalizeIssueKey trims and upper-cases key and checks it looks like an
// issue tracker key. A non-empty prefix (e.g. "PROJ-") further restricts
// the accepted project. An empty key yields nil.
func NormalizeIssueKey(key, prefix string) (*string, error) {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return nil, nil
	}

	if !issueKeyPattern.MatchString(key) {
		return nil, fmt.Errorf("%w: malformed issue key %q", ErrInvalidTask, key)
	}
	if prefix != "" && !strings.HasPrefix(key, strings.ToUpper(prefix)) {
		return nil, fmt.Errorf("%w: issue key %q must start with %q", ErrInvalidTask, key, prefix)
	}

	return &key, nil
}
