package units

import "fmt"

// UndefinedUnitError is returned when a unit name is not known to the registry.
type UndefinedUnitError struct {
	Name string
}

func (e *UndefinedUnitError) Error() string {
	return fmt.Sprintf("'%s' is not defined in the unit registry", e.Name)
}

// SyntaxError is returned for malformed unit expressions.
type SyntaxError struct {
	Expr   string
	Pos    int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid unit expression %q at position %d: %s", e.Expr, e.Pos, e.Reason)
}

// OffsetUnitError is returned when a non-multiplicative unit (e.g. degC) is
// raised to a power or combined with other units.
type OffsetUnitError struct {
	Unit string
}

func (e *OffsetUnitError) Error() string {
	return fmt.Sprintf("ambiguous operation with offset unit (%s)", e.Unit)
}

// DimensionalityError is returned when converting between units of
// different dimensions.
type DimensionalityError struct {
	From    string
	To      string
	FromDim Dimension
	ToDim   Dimension
}

func (e *DimensionalityError) Error() string {
	return fmt.Sprintf("cannot convert from '%s' (%s) to '%s' (%s)", e.From, e.FromDim, e.To, e.ToDim)
}
