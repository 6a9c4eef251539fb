package units

import (
	"fmt"
	"strings"
)

// BaseDimension is one of the SI base dimensions.
type BaseDimension int

const (
	Length BaseDimension = iota
	Mass
	Time
	Temperature
	Current
	Substance
	Luminosity

	numBaseDimensions
)

var baseDimensionNames = [numBaseDimensions]string{
	"length",
	"mass",
	"time",
	"temperature",
	"current",
	"substance",
	"luminosity",
}

func (b BaseDimension) String() string {
	if b < 0 || b >= numBaseDimensions {
		return fmt.Sprintf("BaseDimension(%d)", int(b))
	}
	return baseDimensionNames[b]
}

// Dimension is the physical kind of a quantity, expressed as integer
// exponents over the base dimensions. Two units can be converted into each
// other only if their dimensions are equal.
type Dimension [numBaseDimensions]int

// Dimensionless is the dimension of pure numbers.
var Dimensionless = Dimension{}

// DimensionOf returns the dimension made of a single base dimension.
func DimensionOf(b BaseDimension) Dimension {
	var d Dimension
	d[b] = 1
	return d
}

// Mul returns the dimension of a product.
func (d Dimension) Mul(o Dimension) Dimension {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

// Div returns the dimension of a quotient.
func (d Dimension) Div(o Dimension) Dimension {
	for i := range d {
		d[i] -= o[i]
	}
	return d
}

// Pow returns the dimension raised to n.
func (d Dimension) Pow(n int) Dimension {
	for i := range d {
		d[i] *= n
	}
	return d
}

func (d Dimension) IsDimensionless() bool {
	return d == Dimensionless
}

// String renders the dimension like "[length] / [time] ** 2".
func (d Dimension) String() string {
	if d.IsDimensionless() {
		return "dimensionless"
	}

	var num, den []string
	for i, e := range d {
		switch {
		case e > 0:
			num = append(num, formatFactor(baseDimensionNames[i], e))
		case e < 0:
			den = append(den, formatFactor(baseDimensionNames[i], -e))
		}
	}

	s := strings.Join(num, " * ")
	if len(num) == 0 {
		s = "1"
	}
	if len(den) > 0 {
		s += " / " + strings.Join(den, " / ")
	}
	return s
}

func formatFactor(name string, exp int) string {
	if exp == 1 {
		return "[" + name + "]"
	}
	return fmt.Sprintf("[%s] ** %d", name, exp)
}
