// Package fieldexpr compiles dotted field paths into placeholder-based
// DynamoDB expression parts.
//
// Clients address (possibly nested) document attributes with paths like
// "profile.displayName". The compiler turns a set of such paths into a
// projection or update expression plus the attribute-name and
// attribute-value alias maps DynamoDB expects. Literal attribute names and
// values never appear in the expression string itself, so reserved words
// and attacker-controlled field names cannot break the expression.
//
// All functions are pure: alias counters and maps are local to a single
// call, so the package is safe for concurrent use without coordination.
package fieldexpr

import (
	"fmt"
	"strings"

	apperrors "fieldstore/pkg/errors"
)

// DefaultMaxDepth is the number of dot-separated segments honored in a
// field path before truncation.
const DefaultMaxDepth = 2

// FieldPath is an ordered sequence of non-empty path segments.
type FieldPath []string

// ParseFieldPath splits a dotted identifier into segments, rejects empty
// segments and truncates the result to maxDepth segments.
func ParseFieldPath(raw string, maxDepth int) (FieldPath, error) {
	if maxDepth < 1 {
		return nil, apperrors.NewValidationErrorf("field path depth limit must be at least 1, got %d", maxDepth)
	}

	segments := strings.Split(raw, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, apperrors.NewValidationErrorf("field path %q contains an empty segment", raw)
		}
	}

	if len(segments) > maxDepth {
		segments = segments[:maxDepth]
	}

	return FieldPath(segments), nil
}

// String returns the dotted form of the path.
func (p FieldPath) String() string {
	return strings.Join(p, ".")
}

// nameToken returns the attribute-name placeholder for a segment. The
// (fieldIndex, segmentIndex) pair keeps tokens unique within a call even
// when two paths share a literal segment.
func nameToken(fieldIndex, segmentIndex int) string {
	return fmt.Sprintf("#attr%d_%d", fieldIndex, segmentIndex)
}

// valueToken returns the attribute-value placeholder for a field.
func valueToken(fieldIndex int) string {
	return fmt.Sprintf(":val%d", fieldIndex)
}

// aliasChain registers one name alias per path segment and returns the
// dot-joined placeholder chain expressing nested attribute access.
func aliasChain(fieldIndex int, path FieldPath, names map[string]string) string {
	aliases := make([]string, len(path))
	for si, segment := range path {
		token := nameToken(fieldIndex, si)
		names[token] = segment
		aliases[si] = token
	}
	return strings.Join(aliases, ".")
}

// resolve walks data along path. It reports absent when an intermediate
// node is not a traversable mapping or a key is missing; an explicit nil
// value is present.
func resolve(data map[string]interface{}, path FieldPath) (interface{}, bool) {
	var current interface{} = data
	for _, segment := range path {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
