package fieldexpr

import (
	"strings"

	apperrors "fieldstore/pkg/errors"
)

// Projection is a compiled read-path restriction: the projection
// expression string and the placeholder-to-attribute-name map it
// references. Both are built fresh per compilation and carry no state
// beyond the call.
type Projection struct {
	Expression string
	Names      map[string]string
}

// CompileProjection translates fieldPaths into a projection expression.
// An empty path list means "no projection restriction" and compiles to
// nil, which the storage layer treats as "return all attributes".
func CompileProjection(fieldPaths []string, maxDepth int) (*Projection, error) {
	if maxDepth < 1 {
		return nil, apperrors.NewValidationErrorf("field path depth limit must be at least 1, got %d", maxDepth)
	}
	if len(fieldPaths) == 0 {
		return nil, nil
	}

	names := make(map[string]string)
	chains := make([]string, 0, len(fieldPaths))

	for fi, raw := range fieldPaths {
		path, err := ParseFieldPath(raw, maxDepth)
		if err != nil {
			return nil, err
		}
		chains = append(chains, aliasChain(fi, path, names))
	}

	return &Projection{
		Expression: strings.Join(chains, ", "),
		Names:      names,
	}, nil
}
