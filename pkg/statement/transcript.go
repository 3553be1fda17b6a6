package statement

import "go.dedis.ch/kyber/v3"

// Commitment is the first protocol message. It is a recursive tuple
// mirroring the statement tree's leaves-to-root shape: a DLRep contributes
// one Point, an And concatenates its children's Commitments, and an Or
// carries one Commitment per branch.
type Commitment struct {
	Kind  Kind
	Point kyber.Point  // valid when Kind == KindDLRep
	Parts []Commitment // valid when Kind == KindAnd or KindOr
}

// Response is the third protocol message. For an And/DLRep tree it is
// (recursively) a flat sequence of Scalars; for an Or it additionally
// carries the per-branch sub-challenges alongside each branch's Response.
type Response struct {
	Kind          Kind
	Scalars       []kyber.Scalar // valid when Kind == KindDLRep
	Parts         []Response     // valid when Kind == KindAnd
	SubChallenges []kyber.Scalar // valid when Kind == KindOr, one per branch
	Branches      []Response     // valid when Kind == KindOr, one per branch
}
