package converter

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charlie0129/unitconv/pkg/catalog"
)

var (
	// ErrNegativeValue is returned when a request carries a value below zero.
	ErrNegativeValue = errors.New("value must not be negative")

	// ErrInvalidValue is returned for NaN and infinite values.
	ErrInvalidValue = errors.New("value must be a finite number")

	// ErrMissingUnit is returned when a unit is empty.
	ErrMissingUnit = errors.New("unit must not be empty")

	// ErrUnknownCategory is returned when the requested category does not exist.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnitNotInCategory is returned when a unit is not offered by the requested category.
	ErrUnitNotInCategory = errors.New("unit is not in category")
)

// Request is a conversion request as received from a user. From and To may
// be catalog labels ("Meter (m)") or unit identifiers ("meter").
type Request struct {
	Value    float64 `json:"value"`
	From     string  `json:"from"`
	To       string  `json:"to"`
	Category string  `json:"category,omitempty"`
}

// Resolved is a validated request with units resolved to identifiers.
type Resolved struct {
	Value     float64
	From      string
	To        string
	FromLabel string
	ToLabel   string
}

// Resolve validates r and resolves its units. The dispatcher itself accepts
// any value; the non-negative rule is enforced here for user input.
func (r Request) Resolve() (Resolved, error) {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return Resolved{}, ErrInvalidValue
	}
	if r.Value < 0 {
		return Resolved{}, fmt.Errorf("%w, got %v", ErrNegativeValue, r.Value)
	}

	from := strings.TrimSpace(r.From)
	to := strings.TrimSpace(r.To)
	if from == "" || to == "" {
		return Resolved{}, ErrMissingUnit
	}

	if r.Category == "" {
		return Resolved{
			Value:     r.Value,
			From:      identifierOf(from),
			To:        identifierOf(to),
			FromLabel: catalog.Label(from),
			ToLabel:   catalog.Label(to),
		}, nil
	}

	c, ok := catalog.Get(r.Category)
	if !ok {
		return Resolved{}, fmt.Errorf("%w: %s", ErrUnknownCategory, r.Category)
	}
	fromUnit, ok := c.Lookup(from)
	if !ok {
		return Resolved{}, fmt.Errorf("%w %s: %s", ErrUnitNotInCategory, c.Name, from)
	}
	toUnit, ok := c.Lookup(to)
	if !ok {
		return Resolved{}, fmt.Errorf("%w %s: %s", ErrUnitNotInCategory, c.Name, to)
	}

	return Resolved{
		Value:     r.Value,
		From:      fromUnit.Identifier,
		To:        toUnit.Identifier,
		FromLabel: fromUnit.Label,
		ToLabel:   toUnit.Label,
	}, nil
}

func identifierOf(s string) string {
	if _, u, ok := catalog.Find(s); ok {
		return u.Identifier
	}
	return s
}

// Describe renders a result as a sentence for users.
func Describe(r Resolved, res Result, precision int) string {
	switch res.Kind {
	case KindSuccess:
		return fmt.Sprintf("%s %s = %s %s",
			strconv.FormatFloat(r.Value, 'f', -1, 64), r.FromLabel,
			strconv.FormatFloat(res.Magnitude, 'f', precision, 64), r.ToLabel)
	case KindIncompatible:
		return fmt.Sprintf("Cannot convert %s to %s because they are different types of units.", r.FromLabel, r.ToLabel)
	default:
		if res.Message == "" {
			return "Conversion failed. Please check the input values."
		}
		return fmt.Sprintf("Conversion failed: %s. Please check the input values.", res.Message)
	}
}

// Do resolves, converts and describes a request in one step.
func (d *Dispatcher) Do(r Request, precision int) (Resolved, Result, string, error) {
	resolved, err := r.Resolve()
	if err != nil {
		return Resolved{}, Result{}, "", err
	}
	res := d.Convert(resolved.Value, resolved.From, resolved.To)
	return resolved, res, Describe(resolved, res, precision), nil
}
