package chatparse

import (
	"fmt"
	"strings"
)

// Path identifies a location in a JSON tree by key sequence; nil or an
// empty slice means the root.
type Path []string

// DumpResult is what Dump produces: a cleaned value tree (healing-safe),
// the serialized-and-truncated text for each declared argument path, the
// truncated string for each declared content path, and whether any healing
// marker was found anywhere in the tree.
type DumpResult struct {
	Value           *Value
	Args            map[string]string
	Contents        map[string]string
	IsPartialResult bool
}

// Dump walks a healed JSON value (spec.md §4.4, C4). For each declared
// argument path it serializes the subtree to JSON text, truncating at the
// healing marker if truncation landed inside it. For each declared content
// path the subtree must be a string; it is truncated at the raw marker.
// Everything else is cleaned generically: an object or array whose key or
// element contains the marker is truncated at that point and iteration of
// the remaining siblings stops, since a parser instance only ever has one
// truncation point in the whole document.
//
// A content path whose subtree is not a string is a hard error (caller
// declared the wrong shape).
func Dump(v *Value, healing Healing, argsPaths, contentPaths []Path) (DumpResult, error) {
	d := &dumper{
		markerActive:   !healing.Empty(),
		marker:         healing.Marker,
		jsonDumpMarker: healing.JSONDumpMarker,
		argsPaths:      argsPaths,
		contentPaths:   contentPaths,
		args:           map[string]string{},
		contents:       map[string]string{},
	}
	cleaned, found, err := d.walk(v, nil, 0)
	if err != nil {
		return DumpResult{}, err
	}
	return DumpResult{Value: cleaned, Args: d.args, Contents: d.contents, IsPartialResult: found}, nil
}

// maxDumpDepth bounds recursion so adversarially deep JSON cannot exhaust
// the goroutine stack; beyond it subtrees pass through uninspected rather
// than the walk crashing.
const maxDumpDepth = 2000

type dumper struct {
	markerActive   bool
	marker         string
	jsonDumpMarker string
	argsPaths      []Path
	contentPaths   []Path
	args           map[string]string
	contents       map[string]string
}

func pathKey(path Path) string {
	return strings.Join(path, "\x00")
}

func pathIn(path Path, set []Path) bool {
	for _, p := range set {
		if len(p) != len(path) {
			continue
		}
		match := true
		for i := range p {
			if p[i] != path[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func (d *dumper) walk(v *Value, path Path, depth int) (*Value, bool, error) {
	if pathIn(path, d.argsPaths) {
		serialized := v.Serialize()
		truncated, found := d.truncateSerialized(serialized)
		d.args[pathKey(path)] = truncated
		return newString(truncated), found, nil
	}
	if pathIn(path, d.contentPaths) {
		if v.Kind != KindString {
			return nil, false, fmt.Errorf("content path %v: expected a string, got a non-string value", []string(path))
		}
		truncated, found := d.truncateRaw(v.Str)
		d.contents[pathKey(path)] = truncated
		return newString(truncated), found, nil
	}

	if depth > maxDumpDepth {
		return v, false, nil
	}

	switch v.Kind {
	case KindString:
		return v, d.containsMarker(v.Str), nil
	case KindNumber, KindBool, KindNull:
		return v, false, nil
	case KindArray:
		return d.walkArray(v, path, depth)
	case KindObject:
		return d.walkObject(v, path, depth)
	default:
		return v, false, nil
	}
}

func (d *dumper) walkObject(v *Value, path Path, depth int) (*Value, bool, error) {
	cleaned := &Value{Kind: KindObject}
	for _, entry := range v.Obj {
		if d.containsMarker(entry.Key) {
			return cleaned, true, nil
		}
		childPath := append(append(Path{}, path...), entry.Key)
		childCleaned, childFound, err := d.walk(entry.Val, childPath, depth+1)
		if err != nil {
			return nil, false, err
		}
		if childFound {
			if entry.Val.Kind == KindString && !pathIn(childPath, d.argsPaths) && !pathIn(childPath, d.contentPaths) {
				// Plain string, not a declared path: dropped per spec.md
				// §4.4 (object rule), stop iterating remaining siblings.
				return cleaned, true, nil
			}
			cleaned.Obj = append(cleaned.Obj, ObjEntry{Key: entry.Key, Val: childCleaned})
			return cleaned, true, nil
		}
		cleaned.Obj = append(cleaned.Obj, ObjEntry{Key: entry.Key, Val: childCleaned})
	}
	return cleaned, false, nil
}

func (d *dumper) walkArray(v *Value, path Path, depth int) (*Value, bool, error) {
	cleaned := &Value{Kind: KindArray}
	for i, elem := range v.Arr {
		childPath := append(append(Path{}, path...), indexKey(i))
		childCleaned, childFound, err := d.walk(elem, childPath, depth+1)
		if err != nil {
			return nil, false, err
		}
		if childFound {
			if elem.Kind == KindString {
				// String element containing the marker terminates the
				// array at that element (dropped).
				return cleaned, true, nil
			}
			cleaned.Arr = append(cleaned.Arr, childCleaned)
			return cleaned, true, nil
		}
		cleaned.Arr = append(cleaned.Arr, childCleaned)
	}
	return cleaned, false, nil
}

func indexKey(i int) string {
	return fmt.Sprintf("[%d]", i)
}

func (d *dumper) containsMarker(s string) bool {
	return d.markerActive && strings.Contains(s, d.marker)
}

func (d *dumper) truncateSerialized(serialized string) (string, bool) {
	if !d.markerActive {
		return serialized, false
	}
	idx := strings.Index(serialized, d.jsonDumpMarker)
	if idx < 0 {
		// A marker spliced inside a string value is serialized escaped
		// but without its own quotes.
		idx = strings.Index(serialized, strings.TrimSuffix(strings.TrimPrefix(d.jsonDumpMarker, `"`), `"`))
	}
	if idx < 0 {
		return serialized, false
	}
	truncated := serialized[:idx]
	if truncated == `"` {
		// Dangling opening quote of an aborted string: nothing real was
		// written, emit empty rather than invalid JSON text.
		return "", true
	}
	return truncated, true
}

func (d *dumper) truncateRaw(s string) (string, bool) {
	if !d.markerActive {
		return s, false
	}
	idx := strings.Index(s, d.marker)
	if idx < 0 {
		return s, false
	}
	return s[:idx], true
}
