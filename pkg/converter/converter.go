// Package converter dispatches a conversion request to the units registry
// and reports the outcome as a Result.
package converter

import (
	"fmt"
	"math"

	"github.com/charlie0129/unitconv/pkg/units"
)

// temperatureUnits are converted with their zero-point offsets applied.
var temperatureUnits = map[string]bool{
	"degC":   true,
	"degF":   true,
	"kelvin": true,
}

// Dispatcher converts values between units. It only reads its registry and
// may be shared between goroutines.
type Dispatcher struct {
	reg *units.Registry
}

// New returns a Dispatcher backed by reg, or by the default registry if reg
// is nil.
func New(reg *units.Registry) *Dispatcher {
	if reg == nil {
		reg = units.Default()
	}
	return &Dispatcher{reg: reg}
}

var defaultDispatcher = New(nil)

// Convert converts value using the default registry.
func Convert(value float64, from, to string) Result {
	return defaultDispatcher.Convert(value, from, to)
}

// Convert converts value from one unit to another. It never returns an
// error or panics: unknown units and engine errors become Failure results,
// and a dimension mismatch becomes Incompatible.
func (d *Dispatcher) Convert(value float64, from, to string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(fmt.Sprint(r))
		}
	}()

	if temperatureUnits[from] && temperatureUnits[to] {
		return d.convertTemperature(value, from, to)
	}

	fromUnit, err := d.reg.Parse(from)
	if err != nil {
		return Failure(err.Error())
	}
	toUnit, err := d.reg.Parse(to)
	if err != nil {
		return Failure(err.Error())
	}

	q := units.NewQuantity(1, fromUnit).Mul(value)
	if q.Dimensionality() != toUnit.Dim {
		return Incompatible()
	}

	converted, err := q.To(toUnit)
	if err != nil {
		return Failure(err.Error())
	}
	return finite(converted.Magnitude)
}

// finite rejects magnitudes that overflowed, since they cannot be encoded as
// JSON.
func finite(m float64) Result {
	if math.IsInf(m, 0) || math.IsNaN(m) {
		return Failure("result out of range")
	}
	return Success(m)
}

func (d *Dispatcher) convertTemperature(value float64, from, to string) Result {
	q, err := d.reg.Quantity(value, from)
	if err != nil {
		return Failure(err.Error())
	}
	toUnit, err := d.reg.Parse(to)
	if err != nil {
		return Failure(err.Error())
	}
	converted, err := q.To(toUnit)
	if err != nil {
		return Failure(err.Error())
	}
	return finite(converted.Magnitude)
}
