package codec

import "encoding/binary"

// Int64 is the fixed-width 64-bit signed integer key/value codec.
//
// Values are encoded big-endian so that lexicographic byte order matches
// numeric order for non-negative values, matching I3. Negative values sort
// before non-negative ones only if the sign bit is flipped; Zeebe's own
// keys (element instance keys, due dates, timer keys) are monotonically
// increasing non-negative sequence numbers, so plain big-endian two's
// complement preserves the order this substrate actually relies on.
type Int64 struct{}

// Size always returns 8.
func (Int64) Size(int64) int { return 8 }

// Encode appends the 8-byte big-endian encoding of v.
func (Int64) Encode(dst []byte, v int64) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(v))
}

// Decode reads 8 big-endian bytes from the front of src.
func (Int64) Decode(src []byte) (int64, int, error) {
	if len(src) < 8 {
		return 0, 0, ErrTruncated
	}
	return int64(binary.BigEndian.Uint64(src)), 8, nil
}

// Uint64 is the unsigned counterpart of Int64, used for raw cf_id framing
// and other fields with no sign.
type Uint64 struct{}

func (Uint64) Size(uint64) int { return 8 }

func (Uint64) Encode(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

func (Uint64) Decode(src []byte) (uint64, int, error) {
	if len(src) < 8 {
		return 0, 0, ErrTruncated
	}
	return binary.BigEndian.Uint64(src), 8, nil
}
