package converter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		want    Resolved
		wantErr error
	}{
		{
			name: "identifiers",
			req:  Request{Value: 1, From: "meter", To: "foot"},
			want: Resolved{Value: 1, From: "meter", To: "foot", FromLabel: "Meter (m)", ToLabel: "Foot (ft)"},
		},
		{
			name: "labels",
			req:  Request{Value: 2, From: "Celsius (°C)", To: "Kelvin (K)"},
			want: Resolved{Value: 2, From: "degC", To: "kelvin", FromLabel: "Celsius (°C)", ToLabel: "Kelvin (K)"},
		},
		{
			name: "expression outside catalog",
			req:  Request{Value: 3, From: "km", To: "nautical_mile"},
			want: Resolved{Value: 3, From: "km", To: "nautical_mile", FromLabel: "km", ToLabel: "nautical_mile"},
		},
		{
			name: "category",
			req:  Request{Value: 4, From: "Hectare (ha)", To: "acre", Category: "area"},
			want: Resolved{Value: 4, From: "hectare", To: "acre", FromLabel: "Hectare (ha)", ToLabel: "Acre (ac)"},
		},
		{name: "negative", req: Request{Value: -1, From: "meter", To: "foot"}, wantErr: ErrNegativeValue},
		{name: "nan", req: Request{Value: math.NaN(), From: "meter", To: "foot"}, wantErr: ErrInvalidValue},
		{name: "inf", req: Request{Value: math.Inf(1), From: "meter", To: "foot"}, wantErr: ErrInvalidValue},
		{name: "missing unit", req: Request{Value: 1, From: " ", To: "foot"}, wantErr: ErrMissingUnit},
		{name: "unknown category", req: Request{Value: 1, From: "meter", To: "foot", Category: "Energy"}, wantErr: ErrUnknownCategory},
		{name: "unit outside category", req: Request{Value: 1, From: "meter", To: "gram", Category: "Length"}, wantErr: ErrUnitNotInCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.req.Resolve()
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe(t *testing.T) {
	r := Resolved{Value: 5, From: "mile", To: "kilometer", FromLabel: "Mile (mi)", ToLabel: "Kilometer (km)"}

	assert.Equal(t, "5 Mile (mi) = 8.05 Kilometer (km)", Describe(r, Success(8.04672), 2))
	assert.Equal(t, "5 Mile (mi) = 8.0467 Kilometer (km)", Describe(r, Success(8.04672), 4))
	assert.Equal(t, "Cannot convert Mile (mi) to Kilometer (km) because they are different types of units.", Describe(r, Incompatible(), 2))
	assert.Equal(t, "Conversion failed: boom. Please check the input values.", Describe(r, Failure("boom"), 2))
	assert.Equal(t, "Conversion failed. Please check the input values.", Describe(r, Failure(""), 2))
}

func TestDispatcher_Do(t *testing.T) {
	d := New(nil)

	resolved, res, msg, err := d.Do(Request{Value: 100, From: "degC", To: "degF"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "degC", resolved.From)
	assert.InDelta(t, 212, res.Magnitude, 1e-9)
	assert.Equal(t, "100 Celsius (°C) = 212.0 Fahrenheit (°F)", msg)

	_, _, _, err = d.Do(Request{Value: -5, From: "degC", To: "degF"}, 1)
	assert.ErrorIs(t, err, ErrNegativeValue)
}
