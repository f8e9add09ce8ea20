package completion

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Filter returns the candidates in pool that start with partial, without
// duplicates and sorted for consistent ordering. Matching is literal and case
// sensitive; an empty partial keeps the whole pool.
func Filter(pool []string, partial string) []string {
	matches := lo.Uniq(lo.Filter(pool, func(candidate string, _ int) bool {
		return strings.HasPrefix(candidate, partial)
	}))

	sort.Strings(matches)
	return matches
}
