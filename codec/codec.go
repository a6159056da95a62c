// Package codec provides the key/value codec library used by the column
// family layer to translate domain values into the deterministic,
// order-preserving byte encodings the engine stores.
//
// Reference: RocksDB v10.7.5 include/rocksdb/comparator.h and
// include/rocksdb/slice.h describe the same "bytes are the contract"
// discipline this package follows for user-defined key types.
package codec

import "errors"

// ErrTruncated is returned when a Decode call is given fewer bytes than
// the declared length of the value requires.
var ErrTruncated = errors.New("codec: truncated input")

// ErrInvalidLength is returned when a length prefix is negative or would
// overflow the remaining buffer in a way that Decode cannot resolve.
var ErrInvalidLength = errors.New("codec: invalid length prefix")

// Codec is a deterministic, length-self-describing encoder/decoder for a
// single value of type T.
//
// Implementations must be stateless and safe to share across tables.
// Codecs hold no buffer of their own: the column family layer calls
// Encode with a nil dst, so every encoded key and value is a freshly
// allocated slice and no buffer is reused between calls.
//
// Key codecs additionally guarantee I3: lexicographic order of Encode's
// output matches the logical order of T. Value codecs make no such
// promise.
type Codec[T any] interface {
	// Encode appends the encoding of v to dst and returns the extended
	// slice, mirroring append's growth semantics.
	Encode(dst []byte, v T) []byte

	// Decode reads one value of type T from the front of src and returns
	// it along with the number of bytes consumed. src may have trailing
	// bytes belonging to the next field in a composite key.
	Decode(src []byte) (v T, n int, err error)

	// Size returns the exact number of bytes Encode(nil, v) would
	// produce, without allocating.
	Size(v T) int
}
