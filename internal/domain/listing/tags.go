package listing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// TagSource reports which normalization branch produced a tag slice.
type TagSource int

const (
	// TagsEmpty means the input was absent or of an unsupported shape.
	TagsEmpty TagSource = iota
	// TagsFromSequence means the input was already a sequence and was
	// stringified element by element.
	TagsFromSequence
	// TagsFromJSON means the input was a string holding a JSON array.
	TagsFromJSON
	// TagsFromSplit means the input was a plain string split on commas.
	TagsFromSplit
)

func (s TagSource) String() string {
	switch s {
	case TagsFromSequence:
		return "sequence"
	case TagsFromJSON:
		return "json"
	case TagsFromSplit:
		return "split"
	default:
		return "empty"
	}
}

type tagKind int

const (
	tagAbsent tagKind = iota
	tagSequence
	tagText
)

// TagInput is the loosely-typed tags value of an incoming request. It
// is one of three shapes: a sequence of arbitrary elements, a raw
// string, or absent.
type TagInput struct {
	kind tagKind
	seq  []any
	text string
}

// SequenceTags wraps an already-decoded sequence.
func SequenceTags(elems []any) TagInput {
	return TagInput{kind: tagSequence, seq: elems}
}

// TextTags wraps a raw string value.
func TextTags(s string) TagInput {
	return TagInput{kind: tagText, text: s}
}

// AbsentTags represents a missing tags field.
func AbsentTags() TagInput {
	return TagInput{kind: tagAbsent}
}

// Present reports whether the tags field was supplied at all. Update
// requests leave stored tags untouched when it was not.
func (t TagInput) Present() bool {
	return t.kind != tagAbsent
}

// TagInputFromAny classifies an untyped value into a TagInput. String
// slices and generic slices count as sequences, strings as text, and
// everything else (nil, numbers, objects) as absent.
func TagInputFromAny(v any) TagInput {
	switch val := v.(type) {
	case nil:
		return AbsentTags()
	case []string:
		elems := make([]any, len(val))
		for i, s := range val {
			elems[i] = s
		}
		return SequenceTags(elems)
	case []any:
		return SequenceTags(val)
	case string:
		return TextTags(val)
	default:
		return AbsentTags()
	}
}

// NormalizeTags converts a loosely-typed tags value into a string
// slice. The branch order is fixed:
//
//  1. A sequence is stringified element by element, order preserved.
//  2. A string that parses as a JSON array is stringified the same way.
//  3. Any other string is split on commas, each piece trimmed, empty
//     pieces dropped.
//  4. Everything else yields an empty slice.
//
// The returned TagSource names the branch taken.
func NormalizeTags(in TagInput) ([]string, TagSource) {
	switch in.kind {
	case tagSequence:
		return stringifyAll(in.seq), TagsFromSequence

	case tagText:
		var parsed any
		if err := json.Unmarshal([]byte(in.text), &parsed); err == nil {
			if arr, ok := parsed.([]any); ok {
				return stringifyAll(arr), TagsFromJSON
			}
		}
		return splitTags(in.text), TagsFromSplit

	default:
		return []string{}, TagsEmpty
	}
}

func splitTags(s string) []string {
	out := []string{}
	for _, piece := range strings.Split(s, ",") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

func stringifyAll(elems []any) []string {
	out := make([]string, len(elems))
	for i, e := range elems {
		out[i] = stringify(e)
	}
	return out
}

// stringify coerces one sequence element. JSON decoding yields float64
// for every number, so integers are formatted without a trailing ".0".
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case json.Number:
		return val.String()
	case nil:
		return "null"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
