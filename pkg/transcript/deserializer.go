package transcript

import (
	"bytes"
	"encoding/binary"
	"io"

	"go.dedis.ch/kyber/v3"
)

// deserializer mirrors serializer on the read side, adapted from the
// teacher's pkg/serialization.Deserializer.
type deserializer struct {
	r   *bytes.Reader
	err error
}

func newDeserializer(data []byte) *deserializer {
	return &deserializer{r: bytes.NewReader(data)}
}

func (d *deserializer) readByte() byte {
	if d.err != nil {
		return 0
	}
	b, err := d.r.ReadByte()
	d.err = err
	return b
}

func (d *deserializer) readUint32() uint32 {
	if d.err != nil {
		return 0
	}
	var u uint32
	d.err = binary.Read(d.r, binary.BigEndian, &u)
	return u
}

func (d *deserializer) readKyber(obj ...kyber.Marshaling) {
	if d.err != nil {
		return
	}
	for _, o := range obj {
		_, d.err = o.UnmarshalFrom(d.r)
		if d.err != nil {
			return
		}
	}
}

func (d *deserializer) done() error {
	if d.err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return d.err
}
