package vault

import (
	"fmt"
	"regexp"
)

// Matcher matches records by a case-insensitive regular expression applied
// to the service and username fields, which are the two fields kept in
// clear exactly so that search never needs to decrypt.
type Matcher struct {
	re *regexp.Regexp
}

// NewMatcher compiles pattern. An empty pattern matches everything.
func NewMatcher(pattern string) (*Matcher, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern: %w", err)
	}
	return &Matcher{re: re}, nil
}

// Match reports whether rec's service or username matches.
func (m *Matcher) Match(rec EncryptedCredential) bool {
	return m.re.MatchString(rec.Service) || m.re.MatchString(rec.Username)
}
