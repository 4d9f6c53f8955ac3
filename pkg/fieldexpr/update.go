package fieldexpr

import (
	"strings"

	apperrors "fieldstore/pkg/errors"
)

// Update is a compiled write: the update expression string, the
// attribute-name alias map, and the attribute-value alias map holding the
// literal values extracted from the request payload.
type Update struct {
	Expression string
	Names      map[string]string
	Values     map[string]interface{}
}

// CompileUpdate translates fieldPaths into an update expression against
// data. A path whose value is present in data (an explicit nil counts as
// present and clears the attribute's value) becomes a SET clause; a path
// that resolves to absent becomes a REMOVE clause, deleting the attribute
// entirely. Traversal hitting a scalar where a mapping was expected
// resolves to absent rather than failing.
func CompileUpdate(fieldPaths []string, data map[string]interface{}, maxDepth int) (*Update, error) {
	if maxDepth < 1 {
		return nil, apperrors.NewValidationErrorf("field path depth limit must be at least 1, got %d", maxDepth)
	}
	if len(fieldPaths) == 0 {
		return nil, apperrors.NewValidationError("no field paths to update")
	}

	names := make(map[string]string)
	values := make(map[string]interface{})
	var setClauses, removeClauses []string

	for fi, raw := range fieldPaths {
		path, err := ParseFieldPath(raw, maxDepth)
		if err != nil {
			return nil, err
		}

		chain := aliasChain(fi, path, names)

		value, present := resolve(data, path)
		if present {
			token := valueToken(fi)
			values[token] = value
			setClauses = append(setClauses, chain+" = "+token)
		} else {
			removeClauses = append(removeClauses, chain)
		}
	}

	var segments []string
	if len(setClauses) > 0 {
		segments = append(segments, "SET "+strings.Join(setClauses, ", "))
	}
	if len(removeClauses) > 0 {
		segments = append(segments, "REMOVE "+strings.Join(removeClauses, ", "))
	}

	return &Update{
		Expression: strings.Join(segments, " "),
		Names:      names,
		Values:     values,
	}, nil
}
