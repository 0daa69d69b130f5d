package record

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePreservesShapes(t *testing.T) {
	input := []byte(`{
		"station": "Anand Vihar",
		"latitude": "28.7",
		"pollutant_avg": 45,
		"scale": 1.5,
		"active": true,
		"notes": null,
		"tags": ["pm", "delhi"],
		"meta": {"source": "cpcb"}
	}`)

	v, err := Decode(input)
	require.NoError(t, err)

	obj, ok := v.(Object)
	require.True(t, ok, "top-level value should be an Object")

	assert.Equal(t, String("Anand Vihar"), obj["station"])
	assert.Equal(t, String("28.7"), obj["latitude"], "numeric-looking strings stay strings")
	assert.Equal(t, Int(45), obj["pollutant_avg"], "integral literal decodes to Int")
	assert.Equal(t, Float(1.5), obj["scale"], "fractional literal decodes to Float")
	assert.Equal(t, Bool(true), obj["active"])
	assert.Equal(t, Null{}, obj["notes"])
	assert.Equal(t, Array{String("pm"), String("delhi")}, obj["tags"])
	assert.Equal(t, Object{"source": String("cpcb")}, obj["meta"])
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"a": `))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"a": 1} trailing`))
	assert.Error(t, err)
}

func TestDecodeLargeIntegerFallsBackToFloat(t *testing.T) {
	v, err := Decode([]byte(`99999999999999999999999`))
	require.NoError(t, err)
	_, ok := v.(Float)
	assert.True(t, ok, "out-of-int64-range literal becomes Float")
}

func TestFromAnyYAMLShapes(t *testing.T) {
	// yaml.v3 decodes into any as map[string]any with int, float64,
	// string, bool, nil scalars.
	raw := map[string]any{
		"count": 3,
		"ratio": 0.5,
		"name":  "x",
		"flag":  false,
		"gap":   nil,
		"list":  []any{1, "two"},
	}

	v, err := FromAny(raw)
	require.NoError(t, err)

	obj := v.(Object)
	assert.Equal(t, Int(3), obj["count"])
	assert.Equal(t, Float(0.5), obj["ratio"])
	assert.Equal(t, String("x"), obj["name"])
	assert.Equal(t, Bool(false), obj["flag"])
	assert.Equal(t, Null{}, obj["gap"])
	assert.Equal(t, Array{Int(1), String("two")}, obj["list"])
}

func TestObjectMarshalSortsKeys(t *testing.T) {
	obj := Object{
		"b": Int(2),
		"a": Int(1),
		"c": Int(3),
	}

	data, err := json.Marshal(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2,"c":3}`, string(data))
}

func TestMarshalRoundTrip(t *testing.T) {
	input := []byte(`{"a":[1,2.5,"x",null,true],"b":{"c":"d"}}`)

	v, err := Decode(input)
	require.NoError(t, err)

	out, err := MarshalValue(v)
	require.NoError(t, err)
	assert.JSONEq(t, string(input), string(out))
}

func TestCloneIsShallow(t *testing.T) {
	nested := Object{"k": String("v")}
	obj := Object{"outer": nested}

	clone := obj.Clone()
	clone["extra"] = Int(1)

	_, ok := obj["extra"]
	assert.False(t, ok, "adding to clone must not touch the original")

	// Nested objects are shared, not duplicated.
	cloneNested := clone["outer"].(Object)
	cloneNested["added"] = Int(2)
	assert.Equal(t, Int(2), nested["added"], "nested values are shared")
}

func TestSortedKeysCodePointOrder(t *testing.T) {
	obj := Object{
		"zz":      Int(1),
		"aa":      Int(2),
		"Énergie": Int(3),
		"10":      Int(4),
	}
	assert.Equal(t, []string{"10", "aa", "zz", "Énergie"}, obj.SortedKeys())
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "200.0", FormatFloat(200))
	assert.Equal(t, "28.7", FormatFloat(28.7))
	assert.Equal(t, "-90.0", FormatFloat(-90))
	assert.Equal(t, "0.5", FormatFloat(0.5))
}

func TestFormatFloatNonFinite(t *testing.T) {
	assert.Equal(t, "nan", FormatFloat(math.NaN()))
	assert.Equal(t, "inf", FormatFloat(math.Inf(1)))
	assert.Equal(t, "-inf", FormatFloat(math.Inf(-1)))
}
