package chatparse

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Kind tags the variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// ObjEntry is one key/value pair of a KindObject Value, kept in the order
// it was encountered (JSON object key order is significant to this parser:
// C4 needs to know which key was being written when truncation hit).
type ObjEntry struct {
	Key string
	Val *Value
}

// Value is the parse tree the partial-JSON engine produces. Numbers are
// kept as their original decimal text (Num) to avoid float round-tripping
// loss when only re-serialization is needed.
type Value struct {
	Kind Kind
	Bool bool
	Num  string
	Str  string
	Arr  []*Value
	Obj  []ObjEntry
}

func newNull() *Value           { return &Value{Kind: KindNull} }
func newBool(b bool) *Value     { return &Value{Kind: KindBool, Bool: b} }
func newNumber(n string) *Value { return &Value{Kind: KindNumber, Num: n} }
func newString(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Get looks up a key in a KindObject Value; ok is false for non-objects or
// missing keys.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindObject {
		return nil, false
	}
	for _, e := range v.Obj {
		if e.Key == key {
			return e.Val, true
		}
	}
	return nil, false
}

// Serialize renders the value as compact JSON text, preserving object key
// insertion order. String escaping is delegated to encoding/json.Marshal on
// the bare Go string (no ecosystem library offers string-only JSON escaping
// without round-tripping allocation overhead that matters here less than
// correctness, and this is the same escaper the teacher's codebase already
// trusts via encoding/json throughout internal/provider).
func (v *Value) Serialize() string {
	var sb strings.Builder
	v.serializeInto(&sb)
	return sb.String()
}

func (v *Value) serializeInto(sb *strings.Builder) {
	if v == nil {
		sb.WriteString("null")
		return
	}
	switch v.Kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		if v.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(v.Num)
	case KindString:
		sb.WriteString(encodeJSONString(v.Str))
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.Arr {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.serializeInto(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		sb.WriteByte('{')
		for i, e := range v.Obj {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(encodeJSONString(e.Key))
			sb.WriteByte(':')
			e.Val.serializeInto(sb)
		}
		sb.WriteByte('}')
	}
}

func encodeJSONString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// s is always a valid Go string (possibly with stray surrogate
		// halves from a cut \u escape); quote it by hand as a last resort
		// rather than dropping the content.
		return strconv.Quote(s)
	}
	return string(b)
}
