package converter

import (
	"encoding/json"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlie0129/unitconv/pkg/catalog"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		from  string
		to    string
		kind  Kind
		want  float64
	}{
		{name: "zero length", value: 0, from: "meter", to: "kilometer", kind: KindSuccess, want: 0},
		{name: "boiling point", value: 100, from: "degC", to: "degF", kind: KindSuccess, want: 212},
		{name: "absolute zero", value: 0, from: "kelvin", to: "degF", kind: KindSuccess, want: -459.67},
		{name: "freezing point", value: 32, from: "degF", to: "kelvin", kind: KindSuccess, want: 273.15},
		{name: "miles", value: 5, from: "mile", to: "kilometer", kind: KindSuccess, want: 8.04672},
		{name: "speed", value: 60, from: "mile/hour", to: "kilometer/hour", kind: KindSuccess, want: 96.56064},
		{name: "area", value: 2, from: "hectare", to: "meter**2", kind: KindSuccess, want: 20000},
		{name: "length to mass", value: 1, from: "meter", to: "kilogram", kind: KindIncompatible},
		{name: "temperature to length", value: 1, from: "degC", to: "meter", kind: KindIncompatible},
		{name: "speed to time", value: 1, from: "meter/second", to: "second", kind: KindIncompatible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Convert(tt.value, tt.from, tt.to)
			require.Equal(t, tt.kind, res.Kind, "message: %s", res.Message)
			if tt.kind == KindSuccess {
				assert.InDelta(t, tt.want, res.Magnitude, 1e-9)
			}
		})
	}
}

func TestConvertFailure(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "unknown source", from: "unknown_unit", to: "meter"},
		{name: "unknown target", from: "meter", to: "unknown_unit"},
		{name: "malformed", from: "meter**", to: "meter"},
		{name: "offset unit in compound", from: "degC/second", to: "kelvin/second"},
		{name: "deeply nested", from: strings.Repeat("(", 100000) + "meter" + strings.Repeat(")", 100000), to: "meter"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Convert(1, tt.from, tt.to)
			assert.Equal(t, KindFailure, res.Kind)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestConvertOverflow(t *testing.T) {
	res := Convert(1e308, "kilometer", "millimeter")
	assert.Equal(t, Failure("result out of range"), res)

	_, err := json.Marshal(res)
	assert.NoError(t, err)

	assert.True(t, Convert(1e300, "kilometer", "millimeter").IsSuccess())
}

func TestConvertRoundTrip(t *testing.T) {
	values := []float64{0, 1, 2.5, 1234.5678}

	for _, c := range catalog.All() {
		for _, a := range c.Units {
			for _, b := range c.Units {
				for _, v := range values {
					there := Convert(v, a.Identifier, b.Identifier)
					require.True(t, there.IsSuccess(), "%s -> %s: %s", a.Identifier, b.Identifier, there.Message)
					back := Convert(there.Magnitude, b.Identifier, a.Identifier)
					require.True(t, back.IsSuccess(), "%s -> %s: %s", b.Identifier, a.Identifier, back.Message)
					assert.InDelta(t, v, back.Magnitude, 1e-9*math.Max(1, v), "%v %s -> %s -> %s", v, a.Identifier, b.Identifier, a.Identifier)
				}
			}
		}
	}
}

func TestConvertIdempotent(t *testing.T) {
	first := Convert(3.3, "gallon", "milliliter")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Convert(3.3, "gallon", "milliliter"))
	}

	failure := Convert(1, "unknown_unit", "meter")
	assert.Equal(t, failure, Convert(1, "unknown_unit", "meter"))
}

func TestConvertConcurrent(t *testing.T) {
	d := New(nil)
	want := d.Convert(10, "pound", "kilogram")

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = d.Convert(10, "pound", "kilogram")
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestResultJSON(t *testing.T) {
	b, err := json.Marshal(Incompatible())
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"incompatible","magnitude":0}`, string(b))

	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"success","magnitude":1.5}`), &r))
	assert.Equal(t, Success(1.5), r)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"maybe"}`), &r))
}
