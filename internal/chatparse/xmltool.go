package chatparse

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jeanpaul/chatparse/internal/chatmsg"
	"github.com/jeanpaul/chatparse/internal/chatparse/internal/logx"
)

// Size caps for the XML tool-call scan (spec.md §4.5).
const (
	maxXMLInput  = 1 << 20 // 1 MiB
	maxParams    = 100
	maxTools     = 100
	maxTagName   = 256
	maxAttribute = 1024
)

// xmlTag is one matched tag: its name, its single `=VALUE` attribute (if
// any), the raw text between its opening and closing tags, and its byte
// span in the scanned text.
type xmlTag struct {
	Name      string
	Attribute string
	Content   string
	Start     int
	End       int
}

// findTag locates the next <name ...>...</name> pair at or after from. A
// prefix collision (e.g. searching "tool" inside "<tool_call>") is not a
// match: the scan resumes one byte past the candidate. A missing closing
// tag, or no candidate at all, returns ok=false with no error — absence is
// not failure. Only a malformed attribute raises an error.
func findTag(text string, name string, from int) (tag *xmlTag, err *XMLError, ok bool) {
	needle := "<" + name
	pos := from
	for {
		idx := strings.Index(text[pos:], needle)
		if idx < 0 {
			return nil, nil, false
		}
		start := pos + idx
		nameEnd := start + len(needle)
		if nameEnd >= len(text) {
			pos = start + 1
			continue
		}
		next := text[nameEnd]
		if !(next == '>' || next == '=' || isSpace(next)) {
			pos = start + 1
			continue
		}

		gt := strings.IndexByte(text[nameEnd:], '>')
		if gt < 0 {
			return nil, nil, false
		}
		openEnd := nameEnd + gt

		attr, attrErr := parseAttribute(text[nameEnd:openEnd], start)
		if attrErr != nil {
			return nil, attrErr, false
		}

		closeLit := "</" + name + ">"
		closeRel := strings.Index(text[openEnd+1:], closeLit)
		if closeRel < 0 {
			return nil, nil, false
		}
		closeStart := openEnd + 1 + closeRel
		closeEnd := closeStart + len(closeLit)

		return &xmlTag{
			Name:      name,
			Attribute: attr,
			Content:   text[openEnd+1 : closeStart],
			Start:     start,
			End:       closeEnd,
		}, nil, true
	}
}

// parseAttribute parses the `= VALUE`, `= "VALUE"`, or `= 'VALUE'` form
// found between a tag's name and its closing '>'. An absent '=' is not an
// error: the tag simply has no attribute.
func parseAttribute(section string, tagPos int) (string, *XMLError) {
	eq := strings.IndexByte(section, '=')
	if eq < 0 {
		return "", nil
	}
	value := strings.TrimLeft(section[eq+1:], " \t\n\r\v\f")
	var attr string
	if len(value) > 0 && (value[0] == '"' || value[0] == '\'') {
		quote := value[0]
		if end := strings.IndexByte(value[1:], quote); end >= 0 {
			attr = value[1 : 1+end]
		} else {
			attr = value[1:]
		}
	} else {
		attr = strings.TrimRight(value, " \t\n\r\v\f")
	}
	if len(attr) > maxAttribute {
		return "", newXMLError(ErrAttributeTooLong, tagPos, attr[:maxAttribute], "attribute exceeds MAX_ATTR")
	}
	return attr, nil
}

// findAllTags repeats findTag, each call resuming at the previous match's
// end, capped at MAX_PARAMS.
func findAllTags(text string, name string, from int) ([]*xmlTag, *XMLError) {
	var tags []*xmlTag
	pos := from
	for {
		tag, err, ok := findTag(text, name, pos)
		if err != nil {
			return tags, err
		}
		if !ok {
			return tags, nil
		}
		tags = append(tags, tag)
		if len(tags) > maxParams {
			return tags, newXMLError(ErrTooManyParameters, tag.Start, name, "exceeds MAX_PARAMS")
		}
		pos = tag.End
	}
}

// ParseToolCalls scans content for <tool_call><function=NAME>...</function></tool_call>
// blocks, coercing each <parameter=KEY>VALUE</parameter> against the
// matching tool's schema and emitting one add_tool_call per block onto b.
// Text preceding each block (and any left over after the last one) is
// appended to content verbatim. Per spec.md's worked examples this handles
// a single block; SPEC_FULL's multiple-tool-calls-per-message supplement
// has it resume scanning after each block closes, up to MAX_TOOLS.
func ParseToolCalls(b *Builder, content string, tools []chatmsg.ToolDef) (bool, *XMLError) {
	if len(content) > maxXMLInput {
		return false, newXMLError(ErrInputTooLarge, 0, "", fmt.Sprintf("input length %d exceeds MAX_INPUT", len(content)))
	}
	if len(tools) > maxTools {
		return false, newXMLError(ErrTooManyTools, 0, "", fmt.Sprintf("%d tools exceeds MAX_TOOLS", len(tools)))
	}
	whitelistActive := len(tools) > 0
	toolSet := make(map[string]*chatmsg.ToolDef, len(tools))
	for i := range tools {
		toolSet[tools[i].Name] = &tools[i]
	}

	pos := 0
	blocks := 0
	for {
		tag, err, ok := findTag(content, "tool_call", pos)
		if err != nil {
			return false, err
		}
		if !ok {
			if pos < len(content) {
				b.AddContent(content[pos:])
			}
			return true, nil
		}
		if tag.Start > pos {
			b.AddContent(content[pos:tag.Start])
		}
		blocks++
		if blocks > maxTools {
			return false, newXMLError(ErrTooManyTools, tag.Start, tag.Name, "too many tool_call blocks")
		}
		if xmlErr := parseOneToolCall(b, tag.Content, tag.Start, toolSet, whitelistActive); xmlErr != nil {
			return false, xmlErr
		}
		pos = tag.End
	}
}

func parseOneToolCall(b *Builder, content string, basePos int, toolSet map[string]*chatmsg.ToolDef, whitelistActive bool) *XMLError {
	fnTag, err, ok := findTag(content, "function", 0)
	if err != nil {
		return err
	}
	if !ok {
		return newXMLError(ErrInvalidXMLStructure, basePos, "", "missing <function=NAME> inside tool_call")
	}

	name := fnTag.Attribute
	if name == "" || len(name) > maxTagName {
		return newXMLError(ErrInvalidFunctionName, basePos+fnTag.Start, name, "function name empty or too long")
	}

	toolDef, known := toolSet[name]
	if whitelistActive && !known {
		return newXMLError(ErrFunctionNotFound, basePos+fnTag.Start, name, "function not in whitelist")
	}

	paramTags, perr := findAllTags(fnTag.Content, "parameter", 0)
	if perr != nil {
		return perr
	}

	obj := &Value{Kind: KindObject}
	for _, pt := range paramTags {
		key := pt.Attribute
		if key == "" || len(key) > maxTagName {
			continue
		}
		var schema any
		if toolDef != nil {
			schema = toolDef.Parameters
		}
		jsonText, ok := convertValue(pt.Content, key, schema)
		if !ok {
			logx.Debugf("parameter conversion fell back to string", "key", key, "raw", pt.Content)
		}
		val, _, _, verr := parsePartialJSON(jsonText, "")
		if verr != nil {
			// convertValue always produces well-formed JSON text; this is
			// unreachable in practice but falls back to the raw string
			// rather than dropping the parameter.
			val = newString(strings.TrimSpace(pt.Content))
		}
		obj.Obj = append(obj.Obj, ObjEntry{Key: key, Val: val})
	}

	serialized := obj.Serialize()
	if !json.Valid([]byte(serialized)) {
		return newXMLError(ErrJSONSerializationFailed, basePos, name, "failed to serialize arguments")
	}
	if !b.AddToolCall(name, "", serialized) {
		return newXMLError(ErrInvalidFunctionName, basePos, name, "empty function name rejected by builder")
	}
	return nil
}

// convertValue coerces a trimmed parameter's raw text to JSON according to
// the tool's declared schema type for key, falling back to a JSON-escaped
// string on any conversion failure (never a naive quote-wrap, so embedded
// quotes, backslashes, and the healing marker are always neutralized). ok
// is false exactly when a declared-type coercion fell back to the string
// form (a recoverable format error, per spec.md §7).
func convertValue(raw string, key string, schema any) (text string, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "null" {
		return "null", true
	}

	switch paramType(schema, key) {
	case "string", "str", "text":
		return encodeJSONString(trimmed), true
	case "integer", "int":
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil && n >= math.MinInt32 && n <= math.MaxInt32 {
			return strconv.FormatInt(n, 10), true
		}
		return encodeJSONString(trimmed), false
	case "number", "float":
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil && f >= -math.MaxFloat32 && f <= math.MaxFloat32 {
			return strconv.FormatFloat(f, 'g', -1, 64), true
		}
		return encodeJSONString(trimmed), false
	case "boolean", "bool":
		return strconv.FormatBool(trimmed == "true"), true
	case "object", "array":
		if json.Valid([]byte(trimmed)) {
			return trimmed, true
		}
		return encodeJSONString(trimmed), false
	default:
		return inferValue(trimmed), true
	}
}

// inferValue coerces without a declared schema type: JSON parse, then
// integer, then float, then boolean, else a JSON-escaped string.
func inferValue(trimmed string) string {
	if json.Valid([]byte(trimmed)) {
		return trimmed
	}
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return strconv.FormatInt(n, 10)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	if trimmed == "true" || trimmed == "false" {
		return trimmed
	}
	return encodeJSONString(trimmed)
}

// paramType reads the declared JSON-Schema-ish "type" for key out of a tool's
// Parameters, which is expected to carry a top-level "properties" map
// (per spec.md §6's tool schema input). Returns "" if schema is absent,
// shaped differently, or silent on key.
func paramType(schema any, key string) string {
	m, ok := schema.(map[string]interface{})
	if !ok {
		return ""
	}
	props, ok := m["properties"].(map[string]interface{})
	if !ok {
		return ""
	}
	propSchema, ok := props[key].(map[string]interface{})
	if !ok {
		return ""
	}
	t, _ := propSchema["type"].(string)
	return t
}
