package schema_registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ratio float64

func TestEncodeJSONPreservesZeroFraction(t *testing.T) {
	weight := 7.0

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"zero", map[string]any{"a": 0.0}, `{"a":0.0}`},
		{"whole", map[string]any{"a": 42.0}, `{"a":42.0}`},
		{"negative", map[string]any{"a": -3.0}, `{"a":-3.0}`},
		{"fraction", map[string]any{"a": 1.5}, `{"a":1.5}`},
		{"integer", map[string]any{"a": 7}, `{"a":7}`},
		{"float32", map[string]any{"a": float32(2)}, `{"a":2.0}`},
		{"nested", map[string]any{"a": []any{1.0, map[string]any{"b": 0.0}}}, `{"a":[1.0,{"b":0.0}]}`},
		{"number", map[string]any{"a": json.Number("1.0")}, `{"a":1.0}`},
		{"html", map[string]any{"a": "<b>&</b>"}, `{"a":"<b>&</b>"}`},
		{"typed slice", map[string]any{"a": []float64{1.0, 2.5}}, `{"a":[1.0,2.5]}`},
		{"typed map", map[string]any{"a": map[string]float64{"b": 0.0}}, `{"a":{"b":0.0}}`},
		{"slice of maps", map[string]any{"a": []map[string]any{{"b": 3.0}}}, `{"a":[{"b":3.0}]}`},
		{"array", map[string]any{"a": [2]float32{4, 0.5}}, `{"a":[4.0,0.5]}`},
		{"pointer", map[string]any{"a": &weight}, `{"a":7.0}`},
		{"named float", map[string]any{"a": ratio(1)}, `{"a":1.0}`},
		{"float32 fraction", map[string]any{"a": float32(0.1)}, `{"a":0.1}`},
		{"bytes", map[string]any{"a": []byte("hi")}, `{"a":"aGk="}`},
		{"nil slice", map[string]any{"a": []float64(nil)}, `{"a":null}`},
		{"raw message", map[string]any{"a": json.RawMessage(`1`)}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeJSON(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestNormalizeSchema(t *testing.T) {
	schema := `{
		"type": "record",
		"name": "Test",
		"fields": [{"name": "f", "type": "double", "default": 1.0}]
	}`

	got, err := normalizeSchema(schema)
	require.NoError(t, err)
	assert.Equal(t, `{"fields":[{"default":1.0,"name":"f","type":"double"}],"name":"Test","type":"record"}`, got)

	got, err = normalizeSchema(`"string"`)
	require.NoError(t, err)
	assert.Equal(t, `"string"`, got)
}

func TestNormalizeSchemaRejectsInvalidJSON(t *testing.T) {
	for _, schema := range []string{"", "   ", "{", `{"type":"string"} trailing`, "not json"} {
		_, err := normalizeSchema(schema)
		assert.ErrorIs(t, err, ErrInvalidArgument, "schema %q", schema)
	}
}

func TestDecodeJSONKeepsNumbers(t *testing.T) {
	v, err := decodeJSON([]byte(` {"id": 10, "ratio": 1.0} `))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": json.Number("10"), "ratio": json.Number("1.0")}, v)

	v, err = decodeJSON([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, v)
}
