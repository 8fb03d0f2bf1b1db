package protocol

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Codec reads and writes tick records as JSON lines
type Codec struct {
	enc *json.Encoder
	dec *json.Decoder
}

// NewCodec creates a codec for the given read/writer
func NewCodec(rw io.ReadWriter) *Codec {
	return &Codec{
		enc: json.NewEncoder(rw),
		dec: json.NewDecoder(rw),
	}
}

// NewEncoder creates an encoder-only codec
func NewEncoder(w io.Writer) *Codec {
	return &Codec{
		enc: json.NewEncoder(w),
	}
}

// NewDecoder creates a decoder-only codec
func NewDecoder(r io.Reader) *Codec {
	return &Codec{
		dec: json.NewDecoder(r),
	}
}

// Encode writes a record followed by a newline
func (c *Codec) Encode(rec *TickRecord) error {
	if err := c.enc.Encode(rec); err != nil {
		return eris.Wrapf(err, "encode tick %d", rec.Tick)
	}
	return nil
}

// Decode reads the next record. It returns io.EOF unwrapped at the end of the stream.
func (c *Codec) Decode() (*TickRecord, error) {
	var rec TickRecord
	if err := c.dec.Decode(&rec); err != nil {
		if err == io.EOF {
			return nil, err
		}
		return nil, eris.Wrap(err, "decode tick record")
	}
	return &rec, nil
}
