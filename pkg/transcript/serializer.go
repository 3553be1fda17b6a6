package transcript

import (
	"bytes"
	"encoding/binary"

	"go.dedis.ch/kyber/v3"
)

// serializer accumulates an error across writes so call sites can chain
// without checking after every field, adapted from the teacher's
// pkg/serialization.Serializer.
type serializer struct {
	buf *bytes.Buffer
	err error
}

func newSerializer() *serializer {
	return &serializer{buf: new(bytes.Buffer)}
}

func (s *serializer) writeByte(b byte) {
	if s.err != nil {
		return
	}
	s.err = s.buf.WriteByte(b)
}

func (s *serializer) writeUint32(u uint32) {
	if s.err != nil {
		return
	}
	s.err = binary.Write(s.buf, binary.BigEndian, u)
}

func (s *serializer) writeKyber(obj ...kyber.Marshaling) {
	if s.err != nil {
		return
	}
	for _, o := range obj {
		_, s.err = o.MarshalTo(s.buf)
		if s.err != nil {
			return
		}
	}
}

func (s *serializer) bytes() ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.buf.Bytes(), nil
}
