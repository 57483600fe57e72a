package chatparse

import (
	"regexp"
	"strings"
)

// Cursor is a position-tracked view over an input string. Every try_*
// operation advances pos only on success; every consume_* non-try variant
// either advances pos or returns a *Partial error, leaving pos untouched.
type Cursor struct {
	input     string
	isPartial bool
	pos       int
}

// NewCursor wraps input for a parse that may (isPartial) or may not be the
// complete text.
func NewCursor(input string, isPartial bool) *Cursor {
	return &Cursor{input: input, isPartial: isPartial}
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// SetPos forcibly repositions the cursor; used by callers composing cursor
// state across sub-parses (e.g. resuming find_tag scans).
func (c *Cursor) SetPos(pos int) { c.pos = pos }

// AtEnd reports whether the cursor has consumed the entire input.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.input) }

// Remaining returns the unconsumed suffix of input.
func (c *Cursor) Remaining() string { return c.input[c.pos:] }

// Len returns the length of the full input.
func (c *Cursor) Len() int { return len(c.input) }

// IsPartial reports whether more input may still arrive.
func (c *Cursor) IsPartial() bool { return c.isPartial }

// ConsumeSpaces advances over ASCII whitespace and reports whether any was
// consumed.
func (c *Cursor) ConsumeSpaces() bool {
	start := c.pos
	for c.pos < len(c.input) && isSpace(c.input[c.pos]) {
		c.pos++
	}
	return c.pos > start
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

// TryConsumeLiteral advances past s if input at pos starts with it.
func (c *Cursor) TryConsumeLiteral(s string) bool {
	if strings.HasPrefix(c.input[c.pos:], s) {
		c.pos += len(s)
		return true
	}
	return false
}

// ConsumeLiteral is the non-try variant: it fails with Partial(s) if s is
// not found, rather than silently leaving the cursor in place for the
// caller to decide what to do.
func (c *Cursor) ConsumeLiteral(s string) error {
	if c.TryConsumeLiteral(s) {
		return nil
	}
	// A literal that could still be completed by more bytes (a proper
	// prefix of s sits at the end of input) is Partial only while more
	// input may arrive; otherwise it is a hard miss reported the same way,
	// since this package has no separate "miss" signal for consume_*.
	return &Partial{Token: s}
}

// TryFindLiteral locates s at or after pos. On success it returns the text
// between pos and the match (prelude), the byte range of the match, and
// advances pos past it. On a miss with isPartial set, it looks for the
// longest suffix of the input that is a proper prefix of s (a partially
// typed literal straddling EOF) and, if found, treats that as a match
// spanning to the end of input.
func (c *Cursor) TryFindLiteral(s string) (prelude string, rng [2]int, ok bool) {
	rest := c.input[c.pos:]
	if idx := strings.Index(rest, s); idx >= 0 {
		start := c.pos + idx
		end := start + len(s)
		prelude = c.input[c.pos:start]
		c.pos = end
		return prelude, [2]int{start, end}, true
	}
	if c.isPartial {
		if suffixLen := longestSuffixPrefixOverlap(rest, s); suffixLen > 0 {
			start := len(c.input) - suffixLen
			prelude = c.input[c.pos:start]
			c.pos = len(c.input)
			return prelude, [2]int{start, len(c.input)}, true
		}
	}
	return "", [2]int{}, false
}

// PartialPrefixOverlap reports how many trailing bytes of s could be the
// start of an incomplete occurrence of tag (a proper, non-empty prefix of
// tag sitting at s's very end). Dialects built outside the Cursor ladder —
// C5's XML scan in particular, which works over a plain string rather than
// try_*/consume_* — use this to hold back an in-progress opening tag rather
// than prematurely emitting it as content, preserving spec.md §8's
// prefix-extension monotonicity across reparses.
func PartialPrefixOverlap(s, tag string) int {
	return longestSuffixPrefixOverlap(s, tag)
}

// longestSuffixPrefixOverlap returns the length of the longest suffix of s
// that is also a proper (shorter than needle itself, and non-empty) prefix
// of needle.
func longestSuffixPrefixOverlap(s, needle string) int {
	maxLen := len(needle) - 1
	if maxLen > len(s) {
		maxLen = len(s)
	}
	for l := maxLen; l > 0; l-- {
		if strings.HasSuffix(s, needle[:l]) {
			return l
		}
	}
	return 0
}

// TryFindRegex searches re starting at from. On a Full match it behaves
// like TryFindLiteral but with capture groups, optionally appending the
// prelude to content via addPrelude (nil to discard it). On Partial, if the
// cursor is partial this returns an error (the caller's try ladder should
// fail with Partial); otherwise it returns ok=false.
func (c *Cursor) TryFindRegex(re *regexp.Regexp, from int, addPrelude func(string)) (groups [][2]int, ok bool, err error) {
	res := matchRegex(re, c.input, from)
	switch res.kind {
	case matchFull:
		if addPrelude != nil {
			addPrelude(c.input[c.pos:res.groups[0][0]])
		}
		c.pos = res.groups[0][1]
		return res.groups, true, nil
	case matchPartial:
		if c.isPartial {
			return nil, false, &Partial{Token: re.String()}
		}
		return nil, false, nil
	default:
		return nil, false, nil
	}
}

// TryConsumeRegex requires a Full match anchored exactly at pos.
func (c *Cursor) TryConsumeRegex(re *regexp.Regexp) (groups [][2]int, ok bool, err error) {
	anchored := anchoredAtStart(re)
	res := matchRegex(anchored, c.input, c.pos)
	switch res.kind {
	case matchFull:
		c.pos = res.groups[0][1]
		return res.groups, true, nil
	case matchPartial:
		if c.isPartial {
			return nil, false, &Partial{Token: re.String()}
		}
		return nil, false, nil
	default:
		return nil, false, nil
	}
}

// ConsumeRegex is the non-try variant of TryConsumeRegex.
func (c *Cursor) ConsumeRegex(re *regexp.Regexp) ([][2]int, error) {
	groups, ok, err := c.TryConsumeRegex(re)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &Partial{Token: re.String()}
	}
	return groups, nil
}

// ConsumeRest returns and consumes everything remaining.
func (c *Cursor) ConsumeRest() string {
	rest := c.input[c.pos:]
	c.pos = len(c.input)
	return rest
}
