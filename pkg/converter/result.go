package converter

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind tags the outcome of a conversion.
type Kind int

const (
	// KindSuccess means Magnitude holds the converted value.
	KindSuccess Kind = iota
	// KindIncompatible means the units measure different physical kinds.
	KindIncompatible
	// KindFailure means the units could not be understood; Message says why.
	KindFailure
)

var kindNames = map[Kind]string{
	KindSuccess:      "success",
	KindIncompatible: "incompatible",
	KindFailure:      "failure",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	s, ok := kindNames[k]
	if !ok {
		return nil, pkgerrors.Errorf("unknown result kind %d", int(k))
	}
	return []byte(s), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return pkgerrors.Errorf("unknown result kind %q", string(b))
}

// Result is the outcome of a conversion. Incompatible and Failure are
// ordinary results, not errors.
type Result struct {
	Kind      Kind    `json:"kind"`
	Magnitude float64 `json:"magnitude"`
	Message   string  `json:"message,omitempty"`
}

func Success(magnitude float64) Result {
	return Result{Kind: KindSuccess, Magnitude: magnitude}
}

func Incompatible() Result {
	return Result{Kind: KindIncompatible}
}

func Failure(message string) Result {
	return Result{Kind: KindFailure, Message: message}
}

func (r Result) IsSuccess() bool {
	return r.Kind == KindSuccess
}
