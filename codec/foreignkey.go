package codec

// ForeignKey wraps an inner key codec and tags it with the cf_id of the
// column family it refers to. The tag is schema, not data: the persisted
// bytes of a ForeignKey-wrapped key are byte-identical to those of its
// inner codec. TargetCF is metadata only: neither this codec nor the
// ForeignKeyChecker reads it; the owning column family receives the
// target cf_id as a separate argument of NewForeignKeyColumnFamily.
type ForeignKey[T any] struct {
	Inner    Codec[T]
	TargetCF uint64
}

func (f ForeignKey[T]) Size(v T) int { return f.Inner.Size(v) }

func (f ForeignKey[T]) Encode(dst []byte, v T) []byte { return f.Inner.Encode(dst, v) }

func (f ForeignKey[T]) Decode(src []byte) (T, int, error) { return f.Inner.Decode(src) }
