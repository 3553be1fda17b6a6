package statement

import (
	"crypto/sha256"
	"encoding/binary"
	"hash"

	"go.dedis.ch/kyber/v3"
)

// proofIDBuilder accumulates a canonical digest of a statement's shape:
// node kind, child order, Secret names, and generator identity. Two
// statements with the same shape hash identically regardless of which
// constructor calls produced them.
type proofIDBuilder struct {
	h hash.Hash
}

func newProofIDBuilder() *proofIDBuilder {
	return &proofIDBuilder{h: sha256.New()}
}

func (b *proofIDBuilder) writeKind(k Kind) {
	b.h.Write([]byte{byte(k)})
}

func (b *proofIDBuilder) writeInt(n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	b.h.Write(buf[:])
}

func (b *proofIDBuilder) writeBytes(d []byte) {
	b.writeInt(len(d))
	b.h.Write(d)
}

func (b *proofIDBuilder) writeString(s string) {
	b.writeBytes([]byte(s))
}

func (b *proofIDBuilder) writePoint(p kyber.Point) {
	b.writeString(pointGroupTag(p))
	data, err := p.MarshalBinary()
	if err != nil {
		panic(err) // kyber Points are always marshalable; a failure here is a library bug.
	}
	b.writeBytes(data)
}

func (b *proofIDBuilder) sum() []byte {
	return b.h.Sum(nil)
}
