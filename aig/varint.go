package aig

import "io"

// putVarint appends x encoded as AIGER's little-endian base-128 varint:
// seven bits per byte, low-to-high, continuation bit set on every byte
// but the last (spec §4.4).
func putVarint(buf []byte, x uint32) []byte {
	for x >= 0x80 {
		buf = append(buf, byte(x&0x7f)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

// readVarint decodes one AIGER varint from r.
func readVarint(r io.ByteReader) (uint32, error) {
	var x uint32
	var shift uint
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		x |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return x, nil
		}
		shift += 7
		if shift > 31 {
			return 0, &ParseError{Message: "varint exceeds 32 bits"}
		}
	}
}
