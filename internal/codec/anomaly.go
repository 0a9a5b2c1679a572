package codec

import (
	"errors"
	"fmt"

	"github.com/KilimcininKorOglu/berx/internal/ber"
)

// AnomalyKind classifies a problem found while decoding.
type AnomalyKind int

// Anomaly kinds. The first three mirror TLV-level failures.
const (
	MalformedTag AnomalyKind = iota + 1
	MalformedLength
	InsufficientData
	UnexpectedTag
	UnknownChoiceAlternative
	BoundsViolation
	UnknownOperationCode
	UnknownErrorCode
	UnknownExtensionOID
	TrailingData
	DepthExceeded
	InvalidValue
)

var anomalyNames = map[AnomalyKind]string{
	MalformedTag:             "MalformedTag",
	MalformedLength:          "MalformedLength",
	InsufficientData:         "InsufficientData",
	UnexpectedTag:            "UnexpectedTag",
	UnknownChoiceAlternative: "UnknownChoiceAlternative",
	BoundsViolation:          "BoundsViolation",
	UnknownOperationCode:     "UnknownOperationCode",
	UnknownErrorCode:         "UnknownErrorCode",
	UnknownExtensionOID:      "UnknownExtensionOID",
	TrailingData:             "TrailingData",
	DepthExceeded:            "DepthExceeded",
	InvalidValue:             "InvalidValue",
}

// AllAnomalyKinds lists every kind in declaration order.
func AllAnomalyKinds() []AnomalyKind {
	kinds := make([]AnomalyKind, 0, len(anomalyNames))
	for k := MalformedTag; k <= InvalidValue; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// String returns the kind name.
func (k AnomalyKind) String() string {
	if s, ok := anomalyNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AnomalyKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k AnomalyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Anomaly is a recorded decoding problem.
type Anomaly struct {
	Kind AnomalyKind
	// Offset is the absolute start of the affected TLV.
	Offset int
	// Node is the name of the node the anomaly is attached to.
	Node   string
	Detail string
	// Fatal is set when the anomaly made its node malformed.
	Fatal bool
}

// String formats the anomaly for logs and CLI output.
func (a Anomaly) String() string {
	return fmt.Sprintf("%s at %d (%s): %s", a.Kind, a.Offset, a.Node, a.Detail)
}

// KindOf maps a ber error to the anomaly kind reported for it.
func KindOf(err error) AnomalyKind {
	switch {
	case errors.Is(err, ber.ErrMalformedTag):
		return MalformedTag
	case errors.Is(err, ber.ErrMalformedLength):
		return MalformedLength
	case errors.Is(err, ber.ErrInsufficientData):
		return InsufficientData
	case errors.Is(err, ber.ErrUnexpectedTag):
		return UnexpectedTag
	default:
		return InvalidValue
	}
}
