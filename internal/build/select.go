package build

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// A pattern match being ranked for selection. Tags that parse as semantic
// versions carry a parsed form; tags the semver parser rejects (four or more
// numeric segments, for example) fall back to their raw segments so every
// match stays selectable either way.
type candidate struct {
	raw      string
	version  *semver.Version
	segments []uint64
}

func newCandidate(raw string) (candidate, bool) {
	c := candidate{raw: raw}
	if v, err := semver.NewVersion(raw); err == nil {
		c.version = v
	}
	c.segments = numericSegments(raw)
	return c, c.version != nil || c.segments != nil
}

func (c candidate) greaterThan(o candidate) bool {
	if c.version != nil && o.version != nil {
		return c.version.GreaterThan(o.version)
	}
	return compareSegments(c.segments, o.segments) > 0
}

// Selects the highest-precedence version from a list of candidates.
//
// Candidates that do not match the pattern are rejected. Precedence is
// numeric, dot-separated comparison, so "1.10.0" outranks "1.9.5" even
// though it sorts lower lexicographically. Semantic versions compare by
// semver precedence; matches outside the semver shape compare segment by
// segment, so a tag like "1.2.3.4" is still selectable. Returns an error
// wrapping [ErrNoVersion] when nothing qualifies; the selection is
// deterministic for a given candidate list.
func selectVersion(candidates []string, pattern *regexp.Regexp) (string, error) {
	var (
		best  candidate
		found bool
	)

	for _, raw := range candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" || !pattern.MatchString(raw) {
			continue
		}

		c, ok := newCandidate(raw)
		if !ok {
			continue
		}

		if !found || c.greaterThan(best) {
			best = c
			found = true
		}
	}

	if !found {
		return "", fmt.Errorf("%w: %s", ErrNoVersion, pattern)
	}

	return best.raw, nil
}

// Parses a dot-separated numeric tag into its integer segments. Returns nil
// when any segment is not a plain non-negative integer.
func numericSegments(raw string) []uint64 {
	parts := strings.Split(raw, ".")
	segments := make([]uint64, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil
		}
		segments[i] = n
	}
	return segments
}

// Compares two segment lists positionally, treating missing trailing
// segments as zero: "1.2" and "1.2.0" rank equal.
func compareSegments(a, b []uint64) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var av, bv uint64
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		switch {
		case av > bv:
			return 1
		case av < bv:
			return -1
		}
	}
	return 0
}

// Splits captured listing output into candidate lines.
func candidateLines(output string) []string {
	return strings.Split(strings.TrimSpace(output), "\n")
}
