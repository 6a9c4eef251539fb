package units

import "math"

// Unit maps values to the coherent SI base of its dimension:
//
//	base = value*Scale + Offset
//
// Units with a non-zero Offset (degC, degF) are non-multiplicative.
type Unit struct {
	Name   string
	Scale  float64
	Offset float64
	Dim    Dimension
}

// IsMultiplicative reports whether the unit is a pure scale of its base.
func (u Unit) IsMultiplicative() bool {
	return u.Offset == 0
}

func (u Unit) toBase(v float64) float64 {
	return v*u.Scale + u.Offset
}

func (u Unit) fromBase(b float64) float64 {
	return (b - u.Offset) / u.Scale
}

func (u Unit) mul(o Unit) (Unit, error) {
	if !u.IsMultiplicative() {
		return Unit{}, &OffsetUnitError{Unit: u.Name}
	}
	if !o.IsMultiplicative() {
		return Unit{}, &OffsetUnitError{Unit: o.Name}
	}
	return Unit{
		Name:  u.Name + " * " + o.Name,
		Scale: u.Scale * o.Scale,
		Dim:   u.Dim.Mul(o.Dim),
	}, nil
}

func (u Unit) div(o Unit) (Unit, error) {
	if !u.IsMultiplicative() {
		return Unit{}, &OffsetUnitError{Unit: u.Name}
	}
	if !o.IsMultiplicative() {
		return Unit{}, &OffsetUnitError{Unit: o.Name}
	}
	return Unit{
		Name:  u.Name + " / " + o.Name,
		Scale: u.Scale / o.Scale,
		Dim:   u.Dim.Div(o.Dim),
	}, nil
}

func (u Unit) pow(n int) (Unit, error) {
	if n == 1 {
		return u, nil
	}
	if !u.IsMultiplicative() {
		return Unit{}, &OffsetUnitError{Unit: u.Name}
	}
	return Unit{
		Name:  u.Name,
		Scale: math.Pow(u.Scale, float64(n)),
		Dim:   u.Dim.Pow(n),
	}, nil
}

// Quantity is a magnitude expressed in a unit.
type Quantity struct {
	Magnitude float64
	Unit      Unit
}

// NewQuantity returns a quantity of v in unit u.
func NewQuantity(v float64, u Unit) Quantity {
	return Quantity{Magnitude: v, Unit: u}
}

// Dimensionality returns the dimension of the quantity's unit.
func (q Quantity) Dimensionality() Dimension {
	return q.Unit.Dim
}

// Mul scales the magnitude by a plain number.
func (q Quantity) Mul(f float64) Quantity {
	q.Magnitude *= f
	return q
}

// To converts q into unit u. Offsets are applied whenever either side is a
// non-multiplicative unit, so temperatures convert affinely.
func (q Quantity) To(u Unit) (Quantity, error) {
	if q.Unit.Dim != u.Dim {
		return Quantity{}, &DimensionalityError{
			From:    q.Unit.Name,
			To:      u.Name,
			FromDim: q.Unit.Dim,
			ToDim:   u.Dim,
		}
	}
	if q.Unit.IsMultiplicative() && u.IsMultiplicative() {
		return Quantity{Magnitude: q.Magnitude * (q.Unit.Scale / u.Scale), Unit: u}, nil
	}
	return Quantity{Magnitude: u.fromBase(q.Unit.toBase(q.Magnitude)), Unit: u}, nil
}
