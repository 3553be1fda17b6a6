package statement

import (
	"reflect"

	"go.dedis.ch/kyber/v3"
)

// Kind tags which statement variant a Commitment/Response/Statement node
// is, implementing the "tagged sum" the design notes call for instead of
// separate dynamic-dispatch types per composition.
type Kind int

const (
	KindDLRep Kind = iota
	KindAnd
	KindOr
)

func (k Kind) String() string {
	switch k {
	case KindDLRep:
		return "DLRep"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	default:
		return "Unknown"
	}
}

// pointGroupTag is this adapter's stand-in for "Point.group": kyber gives
// every curve its own concrete Point implementation, so two points were
// produced by the same prime-order group iff they share a concrete Go type.
func pointGroupTag(p kyber.Point) string {
	return reflect.TypeOf(p).String()
}
