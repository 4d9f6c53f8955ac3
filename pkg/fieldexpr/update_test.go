package fieldexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "fieldstore/pkg/errors"
)

func TestCompileUpdate_SetsPresentValues(t *testing.T) {
	data := map[string]interface{}{
		"bio": "hello",
		"profile": map[string]interface{}{
			"displayName": "Dana",
		},
	}

	upd, err := CompileUpdate([]string{"bio", "profile.displayName"}, data, 2)

	require.NoError(t, err)
	assert.Equal(t, "SET #attr0_0 = :val0, #attr1_0.#attr1_1 = :val1", upd.Expression)
	assert.Equal(t, map[string]string{
		"#attr0_0": "bio",
		"#attr1_0": "profile",
		"#attr1_1": "displayName",
	}, upd.Names)
	assert.Equal(t, map[string]interface{}{
		":val0": "hello",
		":val1": "Dana",
	}, upd.Values)
}

func TestCompileUpdate_ExplicitNullIsValueClearNotRemoval(t *testing.T) {
	upd, err := CompileUpdate([]string{"bio"}, map[string]interface{}{"bio": nil}, 2)

	require.NoError(t, err)
	assert.Equal(t, "SET #attr0_0 = :val0", upd.Expression)
	assert.NotContains(t, upd.Expression, "REMOVE")

	value, ok := upd.Values[":val0"]
	require.True(t, ok)
	assert.Nil(t, value)
}

func TestCompileUpdate_AbsentValueBecomesRemove(t *testing.T) {
	data := map[string]interface{}{
		"preferences": map[string]interface{}{},
	}

	upd, err := CompileUpdate([]string{"preferences.notifications"}, data, 2)

	require.NoError(t, err)
	assert.Equal(t, "REMOVE #attr0_0.#attr0_1", upd.Expression)
	assert.Empty(t, upd.Values)
}

func TestCompileUpdate_MixedSetAndRemove(t *testing.T) {
	data := map[string]interface{}{
		"bio": "hello",
	}

	upd, err := CompileUpdate([]string{"bio", "avatar"}, data, 2)

	require.NoError(t, err)
	assert.Equal(t, "SET #attr0_0 = :val0 REMOVE #attr1_0", upd.Expression)
	assert.Equal(t, map[string]interface{}{":val0": "hello"}, upd.Values)
}

func TestCompileUpdate_ScalarIntermediateResolvesAbsent(t *testing.T) {
	// Path expects a mapping but finds a scalar: permissive removal, not an error.
	data := map[string]interface{}{
		"profile": "not-a-map",
	}

	upd, err := CompileUpdate([]string{"profile.displayName"}, data, 2)

	require.NoError(t, err)
	assert.Equal(t, "REMOVE #attr0_0.#attr0_1", upd.Expression)
}

func TestCompileUpdate_TruncatesPathToMaxDepth(t *testing.T) {
	data := map[string]interface{}{
		"a": map[string]interface{}{
			"b": map[string]interface{}{"c": 1},
		},
	}

	upd, err := CompileUpdate([]string{"a.b.c"}, data, 2)

	require.NoError(t, err)
	// Truncated to a.b: the value is the whole subtree under b.
	assert.Equal(t, "SET #attr0_0.#attr0_1 = :val0", upd.Expression)
	assert.Equal(t, map[string]interface{}{"c": 1}, upd.Values[":val0"])
}

func TestCompileUpdate_ArraysAreOpaqueLeaves(t *testing.T) {
	data := map[string]interface{}{
		"tags": []interface{}{"go", "dynamodb"},
	}

	upd, err := CompileUpdate([]string{"tags.0"}, data, 2)

	require.NoError(t, err)
	// Dotted descent into an array element is not supported.
	assert.Equal(t, "REMOVE #attr0_0.#attr0_1", upd.Expression)
}

func TestCompileUpdate_RejectsEmptyFieldList(t *testing.T) {
	_, err := CompileUpdate(nil, map[string]interface{}{"bio": "x"}, 2)

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCompileUpdate_RejectsEmptySegmentAndBadDepth(t *testing.T) {
	_, err := CompileUpdate([]string{"a..b"}, map[string]interface{}{}, 2)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = CompileUpdate([]string{"a"}, map[string]interface{}{}, 0)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestCompileUpdate_SourceObjectNotMutated(t *testing.T) {
	nested := map[string]interface{}{"displayName": "Dana"}
	data := map[string]interface{}{"profile": nested}

	_, err := CompileUpdate([]string{"profile.displayName", "missing"}, data, 2)

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"profile": nested}, data)
	assert.Equal(t, map[string]interface{}{"displayName": "Dana"}, nested)
}
