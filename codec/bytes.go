package codec

import "encoding/binary"

// maxBytesLen guards against a corrupted 4-byte length prefix being
// interpreted as a multi-gigabyte allocation request.
const maxBytesLen = 1 << 31

// Bytes is the variable-length byte-sequence codec: a 4-byte big-endian
// length prefix followed by the raw bytes. It is the building block for
// String and for any opaque blob value.
//
// Bytes does not preserve I3 in general (two sequences with a common
// prefix but different lengths do not necessarily sort the same way once
// the length prefix is mixed in); it is intended for use as a value codec
// or as the last component of a composite key.
type Bytes struct{}

func (Bytes) Size(v []byte) int { return 4 + len(v) }

func (Bytes) Encode(dst []byte, v []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(v)))
	return append(dst, v...)
}

func (Bytes) Decode(src []byte) ([]byte, int, error) {
	if len(src) < 4 {
		return nil, 0, ErrTruncated
	}
	n := binary.BigEndian.Uint32(src)
	if n > maxBytesLen {
		return nil, 0, ErrInvalidLength
	}
	if int(n) > len(src)-4 {
		return nil, 0, ErrTruncated
	}
	return src[4 : 4+n], 4 + int(n), nil
}

// String is the UTF-8 byte-sequence codec. No normalization is performed;
// the caller's string is encoded exactly as given.
type String struct{}

func (String) Size(v string) int { return 4 + len(v) }

func (String) Encode(dst []byte, v string) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(v)))
	return append(dst, v...)
}

func (String) Decode(src []byte) (string, int, error) {
	b, n, err := Bytes{}.Decode(src)
	if err != nil {
		return "", 0, err
	}
	return string(b), n, nil
}

// Nil is the zero-byte sentinel value codec, used for set-like column
// families where the key alone carries the information and the value is
// a presence marker (e.g. the due-date index).
type Nil struct{}

func (Nil) Size(struct{}) int { return 0 }

func (Nil) Encode(dst []byte, _ struct{}) []byte { return dst }

func (Nil) Decode(src []byte) (struct{}, int, error) {
	return struct{}{}, 0, nil
}
