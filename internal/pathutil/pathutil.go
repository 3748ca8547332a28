package pathutil

import (
	"path/filepath"
	"regexp"
	"strings"
)

// separators matches one or more consecutive forward or backward slashes so
// that mixed-separator path lists segment identically on every platform.
var separators = regexp.MustCompile(`[/\\]+`)

// Segments splits a path into its segments on runs of slashes or backslashes.
// A rooted POSIX path yields a leading empty segment, which preserves the root
// when the segments are rejoined.
func Segments(path string) []string {
	return separators.Split(path, -1)
}

// CommonParentDirectory returns the deepest directory that is an ancestor of
// (or equal to) every path in the list, comparing segment by segment with
// exact, case-sensitive equality. "." and ".." segments are not normalized,
// and a lone path is returned re-segmented and rejoined without stripping a
// trailing filename component.
//
// Paths with no shared prefix resolve to the root separator. An empty list
// returns the empty string; callers are expected to have rejected empty input
// sets before naming modules against a root.
func CommonParentDirectory(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	common := Segments(paths[0])
	for _, path := range paths[1:] {
		segs := Segments(path)
		shared := 0
		for shared < len(common) && shared < len(segs) && common[shared] == segs[shared] {
			shared++
		}
		common = common[:shared]
	}
	joined := strings.Join(common, string(filepath.Separator))
	if joined == "" {
		// Either nothing matched or only the leading root segment did.
		return "/"
	}
	return joined
}
