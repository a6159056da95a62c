package codec

import "github.com/TitanUser/zeebe/internal/compression"

// Compressed wraps a value codec with a block-compression pass. It is a
// value-only codec (I3 is not asked of it): decoding depends only on the
// byte content, not on comparison order, so compressing is transparent to
// every caller above the column family layer.
//
// Use it for values expected to carry larger, compressible payloads, such
// as an element instance's serialized variable set; tiny fixed records
// like a subscription's lifecycle state are cheaper left uncompressed.
type Compressed[T any] struct {
	Inner Codec[T]
	Algo  compression.Type
}

func (c Compressed[T]) Size(v T) int {
	// Not a true upper bound: compressed framing can exceed the inner
	// size on incompressible input. No caller uses Size() to pre-size a
	// buffer for this codec — every encode path here calls Encode(nil,
	// …) — so this is an estimate for callers that just want a rough
	// capacity hint, not a guarantee.
	return 1 + c.Inner.Size(v)
}

func (c Compressed[T]) Encode(dst []byte, v T) []byte {
	raw := c.Inner.Encode(nil, v)
	compressed, err := compression.Compress(c.Algo, raw)
	if err != nil {
		// Compression failure falls back to storing the raw bytes under
		// the None tag; Decode must tolerate that to stay total (I2).
		return append(append(dst, byte(compression.None)), raw...)
	}
	dst = append(dst, byte(c.Algo))
	return append(dst, compressed...)
}

func (c Compressed[T]) Decode(src []byte) (T, int, error) {
	var zero T
	if len(src) < 1 {
		return zero, 0, ErrTruncated
	}
	algo := compression.Type(src[0])
	raw, err := compression.Decompress(algo, src[1:])
	if err != nil {
		return zero, 0, err
	}
	v, _, err := c.Inner.Decode(raw)
	if err != nil {
		return zero, 0, err
	}
	return v, len(src), nil
}
