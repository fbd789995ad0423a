// Package version detects the installed playback engine and checks it against the supported range.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Compare performs a semantic comparison between two version strings.
// A missing patch component counts as zero and anything after it is ignored.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range lo.Zip2(av, bv) {
		if pair.A > pair.B {
			return 1, nil
		}

		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}

// parse reads major.minor[.patch] from the start of s.
func parse(s string) ([]int, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	// drop build suffixes such as -dirty or +git
	if i := strings.IndexAny(s, "-+ "); i >= 0 {
		s = s[:i]
	}

	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("invalid version %q", s)
	}

	version := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", s, err)
		}
		version[i] = n
	}

	return version, nil
}
