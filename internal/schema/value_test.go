package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueUnmarshalNested(t *testing.T) {
	raw := `{
		"fallback_type": "intelligent_analysis",
		"retries": 2,
		"degraded": true,
		"trace": null,
		"steps": ["probe", "dispatch"],
		"detail": {"code": 408, "source": "transport"}
	}`

	var meta map[string]Value
	require.NoError(t, json.Unmarshal([]byte(raw), &meta))

	s, ok := meta["fallback_type"].AsString()
	require.True(t, ok)
	assert.Equal(t, "intelligent_analysis", s)

	n, ok := meta["retries"].AsNumber()
	require.True(t, ok)
	assert.Equal(t, 2.0, n)

	b, ok := meta["degraded"].AsBool()
	require.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, KindNull, meta["trace"].Kind())

	list, ok := meta["steps"].AsList()
	require.True(t, ok)
	require.Len(t, list, 2)
	first, _ := list[0].AsString()
	assert.Equal(t, "probe", first)

	detail, ok := meta["detail"].AsMap()
	require.True(t, ok)
	code, _ := detail["code"].AsNumber()
	assert.Equal(t, 408.0, code)
}

func TestValueMarshalRoundTrip(t *testing.T) {
	original := MapValue(map[string]Value{
		"error":  StringValue("timeout"),
		"count":  NumberValue(3),
		"flags":  ListValue(BoolValue(true), Null()),
		"nested": MapValue(map[string]Value{"ok": BoolValue(false)}),
	})

	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Value
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, original, decoded)
}

func TestValueWrongKindAccessors(t *testing.T) {
	v := StringValue("hello")

	_, ok := v.AsNumber()
	assert.False(t, ok)
	_, ok = v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsList()
	assert.False(t, ok)
	_, ok = v.AsMap()
	assert.False(t, ok)
}

func TestValueString(t *testing.T) {
	v := MapValue(map[string]Value{
		"b": NumberValue(1.5),
		"a": StringValue("x"),
	})
	// Map keys render sorted for stable output.
	assert.Equal(t, "{a=x, b=1.5}", v.String())

	assert.Equal(t, "[true, null]", ListValue(BoolValue(true), Null()).String())
}
