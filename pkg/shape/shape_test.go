package shape_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/shape"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestExtractRejectsNonObjects(t *testing.T) {
	for _, raw := range []string{`[1,2]`, `"text"`, `42`, `null`} {
		t.Run(raw, func(t *testing.T) {
			_, err := shape.Extract(decode(t, raw))
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestExtractPrimitivesAndNull(t *testing.T) {
	fp, err := shape.Extract(decode(t, `{"a":"x","b":1.5,"c":true,"d":null}`))
	require.NoError(t, err)

	assert.Equal(t, shape.KindObject, fp.Kind)
	assert.Equal(t, "string", fp.Fields["a"].String())
	assert.Equal(t, "number", fp.Fields["b"].String())
	assert.Equal(t, "boolean", fp.Fields["c"].String())
	assert.Equal(t, shape.KindNull, fp.Fields["d"].Kind)
	assert.Equal(t, []string{"a", "b", "c", "d"}, fp.FieldNames())
}

func TestExtractArrays(t *testing.T) {
	fp, err := shape.Extract(decode(t, `{"empty":[],"nums":[1,2],"points":[{"date":"2025-01-01","value":1}]}`))
	require.NoError(t, err)

	assert.Equal(t, "unknown[]", fp.Fields["empty"].String())
	assert.Nil(t, fp.Fields["empty"].ElementShape())
	assert.Equal(t, "number[]", fp.Fields["nums"].String())

	points := fp.Fields["points"]
	assert.Equal(t, shape.KindArray, points.Kind)
	assert.Equal(t, "object[]", points.String())
	assert.Equal(t, []string{"date", "value"}, points.FieldNames(), "object element fields are carried by the array itself")
}

// Only the first element is sampled; later elements of a different shape are
// invisible. This is a known blind spot.
func TestExtractSamplesFirstElementOnly(t *testing.T) {
	homogeneous, err := shape.Extract(decode(t, `{"xs":[1,2,3]}`))
	require.NoError(t, err)
	heterogeneous, err := shape.Extract(decode(t, `{"xs":[1,"two",{"three":3}]}`))
	require.NoError(t, err)

	assert.True(t, homogeneous.Equal(heterogeneous))
}

func TestExtractIsDeterministic(t *testing.T) {
	raw := `{"name":"fees","value":12.5,"active":true,"nested":{"unit":"usd"}}`
	first, err := shape.Extract(decode(t, raw))
	require.NoError(t, err)
	second, err := shape.Extract(decode(t, raw))
	require.NoError(t, err)

	assert.True(t, first.Equal(second))

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestExtractJSON(t *testing.T) {
	fp, err := shape.ExtractJSON([]byte(`{"data":[{"id":"fees"}],"total":1}`))
	require.NoError(t, err)
	assert.Equal(t, "object[]", fp.Fields["data"].String())

	_, err = shape.ExtractJSON([]byte(`{`))
	require.Error(t, err)
}

func TestFingerprintJSONRoundTrip(t *testing.T) {
	fp, err := shape.Extract(decode(t, `{"points":[{"value":1}],"tags":["a"],"none":null}`))
	require.NoError(t, err)

	data, err := json.Marshal(fp)
	require.NoError(t, err)
	var back shape.Fingerprint
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, fp.Equal(&back))
}
