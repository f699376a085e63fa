package record

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_Compact(t *testing.T) {
	v, err := Decode([]byte(`{"b": [1, 2.5, "x<y"], "a": {"t": true, "n": null}}`))
	require.NoError(t, err)

	out, err := Encode(v, "")
	require.NoError(t, err)
	assert.Equal(t, `{"b":[1,2.5,"x<y"],"a":{"t":true,"n":null}}`, string(out))
}

func TestEncode_Indented(t *testing.T) {
	v, err := Decode([]byte(`{"Name": "Ada", "Tags": [], "Meta": {}, "Ids": [7]}`))
	require.NoError(t, err)

	out, err := Encode(v, "  ")
	require.NoError(t, err)

	expected := `{
  "Name": "Ada",
  "Tags": [],
  "Meta": {},
  "Ids": [
    7
  ]
}`
	assert.Equal(t, expected, string(out))
}

func TestEncode_GoValues(t *testing.T) {
	v := map[string]any{
		"z":     int64(3),
		"a":     uint8(1),
		"inner": []any{float32(0.5), nil},
	}

	out, err := Encode(v, "")
	require.NoError(t, err)
	// Go maps are written in sorted key order
	assert.Equal(t, `{"a":1,"inner":[0.5,null],"z":3}`, string(out))
}

func TestEncode_NonFiniteNumbers(t *testing.T) {
	out, err := Encode([]any{math.NaN(), math.Inf(1)}, "")
	require.NoError(t, err)
	assert.Equal(t, `[null,null]`, string(out))
}

func TestEncode_SharedReferenceIsNotACycle(t *testing.T) {
	shared := NewObject()
	shared.Set("v", 1.0)

	root := NewObject()
	root.Set("left", shared)
	root.Set("right", shared)

	out, err := Encode(root, "")
	require.NoError(t, err)
	assert.Equal(t, `{"left":{"v":1},"right":{"v":1}}`, string(out))
}

func TestEncode_Cycle(t *testing.T) {
	root := NewObject()
	root.Set("self", root)

	_, err := Encode(root, "")
	assert.True(t, errors.Is(err, ErrCyclicValue))
}

func TestEncode_UnsupportedType(t *testing.T) {
	_, err := Encode([]any{func() {}}, "")
	assert.Error(t, err)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	input := `{"Id":12,"Name":{"First":"Zoë","Last":"Ng"},"Tags":["a","b"],"Active":false}`

	v, err := Decode([]byte(input))
	require.NoError(t, err)

	out, err := Encode(v, "")
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}
