package chatparse

import (
	"regexp"
	"sync"
)

// matchKind is the three-way result the partial-regex matcher reports.
// Preserving this contract across implementations is called out explicitly
// in spec.md's design notes: it is intrinsic to the streaming model.
type matchKind int

const (
	matchNone matchKind = iota
	matchPartial
	matchFull
)

// matchResult carries a Full match's capture-group byte ranges, relative to
// the slice the regex was run against.
type matchResult struct {
	kind   matchKind
	groups [][2]int // [0] is the whole match, [1:] are sub-groups
}

// matchRegex runs re against s starting at from and classifies the outcome:
//   - Full: re matched within s.
//   - Partial: re did not match, but couldBePartialMatch accepted some
//     trailing run of s (see its comment for how narrow that check is).
//   - None: anything else. A match that was cut off by the end of s partway
//     through the pattern is reported as None, not Partial: Go's regexp
//     engine offers no prefix-match support and none is emulated here.
func matchRegex(re *regexp.Regexp, s string, from int) matchResult {
	if from > len(s) {
		return matchResult{kind: matchNone}
	}
	sub := s[from:]
	if loc := re.FindStringSubmatchIndex(sub); loc != nil {
		groups := toGroups(loc, from)
		return matchResult{kind: matchFull, groups: groups}
	}
	if couldBePartialMatch(re, sub) {
		return matchResult{kind: matchPartial}
	}
	return matchResult{kind: matchNone}
}

func toGroups(loc []int, offset int) [][2]int {
	groups := make([][2]int, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, [2]int{-1, -1})
			continue
		}
		groups = append(groups, [2]int{loc[i] + offset, loc[i+1] + offset})
	}
	return groups
}

// couldBePartialMatch reports whether re, anchored at the start, matches
// some non-empty trailing run of sub exactly (from its first byte to the end
// of sub). Because every such match is also a match of re inside sub, this
// only succeeds where the unanchored search in matchRegex failed because of
// a start-of-text or word-boundary assertion that holds at the start of the
// trailing run; it does not detect a pattern that needed more bytes to
// finish.
func couldBePartialMatch(re *regexp.Regexp, sub string) bool {
	anchored := anchoredAtStart(re)
	for start := 0; start < len(sub); start++ {
		candidate := sub[start:]
		loc := anchored.FindStringIndex(candidate)
		if loc != nil && loc[0] == 0 && loc[1] == len(candidate) {
			return true
		}
	}
	return false
}

var (
	anchorCacheMu sync.Mutex
	anchorCache   = map[*regexp.Regexp]*regexp.Regexp{}
)

func anchoredAtStart(re *regexp.Regexp) *regexp.Regexp {
	anchorCacheMu.Lock()
	defer anchorCacheMu.Unlock()
	if a, ok := anchorCache[re]; ok {
		return a
	}
	a, err := regexp.Compile(`\A(?:` + re.String() + `)`)
	if err != nil {
		a = re
	}
	anchorCache[re] = a
	return a
}
