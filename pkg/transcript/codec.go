// Package transcript provides the concrete binary codec for the Commitment
// and Response wire shapes package statement leaves as plain Go values. The
// encoding is a tagged recursive tuple: a Kind byte followed by whatever
// that Kind carries, mirroring the statement tree itself leaf-to-root.
package transcript

import (
	"go.dedis.ch/kyber/v3"

	"sigmazk/pkg/group"
	"sigmazk/pkg/statement"
)

// EncodeCommitment serializes a Commitment tree to its wire form.
func EncodeCommitment(c statement.Commitment) ([]byte, error) {
	s := newSerializer()
	writeCommitment(s, c)
	return s.bytes()
}

func writeCommitment(s *serializer, c statement.Commitment) {
	s.writeByte(byte(c.Kind))
	switch c.Kind {
	case statement.KindDLRep:
		s.writeKyber(c.Point)
	case statement.KindAnd, statement.KindOr:
		s.writeUint32(uint32(len(c.Parts)))
		for _, part := range c.Parts {
			writeCommitment(s, part)
		}
	}
}

// DecodeCommitment parses a Commitment tree encoded by EncodeCommitment.
// suite supplies fresh Point/Scalar instances to unmarshal into.
func DecodeCommitment(suite group.Suite, data []byte) (statement.Commitment, error) {
	d := newDeserializer(data)
	c := readCommitment(d, suite)
	return c, d.done()
}

func readCommitment(d *deserializer, suite group.Suite) statement.Commitment {
	kind := statement.Kind(d.readByte())
	c := statement.Commitment{Kind: kind}
	switch kind {
	case statement.KindDLRep:
		p := suite.Point()
		d.readKyber(p)
		c.Point = p
	case statement.KindAnd, statement.KindOr:
		n := d.readUint32()
		c.Parts = make([]statement.Commitment, n)
		for i := range c.Parts {
			c.Parts[i] = readCommitment(d, suite)
		}
	}
	return c
}

// EncodeResponse serializes a Response tree to its wire form.
func EncodeResponse(r statement.Response) ([]byte, error) {
	s := newSerializer()
	writeResponse(s, r)
	return s.bytes()
}

func writeResponse(s *serializer, r statement.Response) {
	s.writeByte(byte(r.Kind))
	switch r.Kind {
	case statement.KindDLRep:
		s.writeUint32(uint32(len(r.Scalars)))
		for _, sc := range r.Scalars {
			s.writeKyber(sc)
		}
	case statement.KindAnd:
		s.writeUint32(uint32(len(r.Parts)))
		for _, part := range r.Parts {
			writeResponse(s, part)
		}
	case statement.KindOr:
		s.writeUint32(uint32(len(r.Branches)))
		for i, branch := range r.Branches {
			s.writeKyber(r.SubChallenges[i])
			writeResponse(s, branch)
		}
	}
}

// DecodeResponse parses a Response tree encoded by EncodeResponse. suite
// supplies fresh Scalar instances to unmarshal into.
func DecodeResponse(suite group.Suite, data []byte) (statement.Response, error) {
	d := newDeserializer(data)
	r := readResponse(d, suite)
	return r, d.done()
}

func readResponse(d *deserializer, suite group.Suite) statement.Response {
	kind := statement.Kind(d.readByte())
	r := statement.Response{Kind: kind}
	switch kind {
	case statement.KindDLRep:
		n := d.readUint32()
		r.Scalars = make([]kyber.Scalar, n)
		for i := range r.Scalars {
			sc := suite.Scalar()
			d.readKyber(sc)
			r.Scalars[i] = sc
		}
	case statement.KindAnd:
		n := d.readUint32()
		r.Parts = make([]statement.Response, n)
		for i := range r.Parts {
			r.Parts[i] = readResponse(d, suite)
		}
	case statement.KindOr:
		n := d.readUint32()
		r.SubChallenges = make([]kyber.Scalar, n)
		r.Branches = make([]statement.Response, n)
		for i := 0; i < int(n); i++ {
			sc := suite.Scalar()
			d.readKyber(sc)
			r.SubChallenges[i] = sc
			r.Branches[i] = readResponse(d, suite)
		}
	}
	return r
}
