package codec

// Pair is the value type produced and consumed by Composite2: the ordered
// concatenation of two sub-codec domains.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Composite2 concatenates two sub-codecs into a single ordered key. Per
// I3, lexicographic order on the concatenation equals lexicographic order
// on the tuple (First, Second) as long as both sub-codecs individually
// preserve order and First's encoding is self-delimiting (true for every
// codec in this package except Compressed, whose Decode consumes all of
// its input).
type Composite2[A, B any] struct {
	First  Codec[A]
	Second Codec[B]
}

func (c Composite2[A, B]) Size(v Pair[A, B]) int {
	return c.First.Size(v.First) + c.Second.Size(v.Second)
}

func (c Composite2[A, B]) Encode(dst []byte, v Pair[A, B]) []byte {
	dst = c.First.Encode(dst, v.First)
	dst = c.Second.Encode(dst, v.Second)
	return dst
}

func (c Composite2[A, B]) Decode(src []byte) (Pair[A, B], int, error) {
	var out Pair[A, B]
	a, n1, err := c.First.Decode(src)
	if err != nil {
		return out, 0, err
	}
	b, n2, err := c.Second.Decode(src[n1:])
	if err != nil {
		return out, 0, err
	}
	out.First, out.Second = a, b
	return out, n1 + n2, nil
}

// EncodePrefix serializes only the leading sub-codec, producing the
// prefix bytes that whileEqualPrefix scans match against. This is the
// "prefix mode" described in the key codec library: only the leading
// k < N sub-codecs are serialized.
func (c Composite2[A, B]) EncodePrefix(dst []byte, a A) []byte {
	return c.First.Encode(dst, a)
}

// Triple is the value type produced and consumed by Composite3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Composite3 concatenates three sub-codecs, such as the due-date index's
// (dueDate, elementInstanceKey, timerKey) key.
type Composite3[A, B, C any] struct {
	First  Codec[A]
	Second Codec[B]
	Third  Codec[C]
}

func (c Composite3[A, B, C]) Size(v Triple[A, B, C]) int {
	return c.First.Size(v.First) + c.Second.Size(v.Second) + c.Third.Size(v.Third)
}

func (c Composite3[A, B, C]) Encode(dst []byte, v Triple[A, B, C]) []byte {
	dst = c.First.Encode(dst, v.First)
	dst = c.Second.Encode(dst, v.Second)
	dst = c.Third.Encode(dst, v.Third)
	return dst
}

func (c Composite3[A, B, C]) Decode(src []byte) (Triple[A, B, C], int, error) {
	var out Triple[A, B, C]
	a, n1, err := c.First.Decode(src)
	if err != nil {
		return out, 0, err
	}
	b, n2, err := c.Second.Decode(src[n1:])
	if err != nil {
		return out, 0, err
	}
	cc, n3, err := c.Third.Decode(src[n1+n2:])
	if err != nil {
		return out, 0, err
	}
	out.First, out.Second, out.Third = a, b, cc
	return out, n1 + n2 + n3, nil
}

// EncodePrefix serializes only the leading sub-codec.
func (c Composite3[A, B, C]) EncodePrefix(dst []byte, a A) []byte {
	return c.First.Encode(dst, a)
}

// EncodePrefix2 serializes the leading two sub-codecs, for scans that
// key off (dueDate, elementInstanceKey) without the final timerKey.
func (c Composite3[A, B, C]) EncodePrefix2(dst []byte, a A, b B) []byte {
	dst = c.First.Encode(dst, a)
	dst = c.Second.Encode(dst, b)
	return dst
}
