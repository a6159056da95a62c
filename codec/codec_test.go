package codec

import (
	"bytes"
	"testing"
)

// TestInt64RoundTrip verifies P1 (codec round-trip) for the fixed-width
// integer codec.
func TestInt64RoundTrip(t *testing.T) {
	c := Int64{}
	values := []int64{0, 1, -1, 42, 1 << 40, -(1 << 40)}
	for _, v := range values {
		buf := c.Encode(nil, v)
		if len(buf) != c.Size(v) {
			t.Fatalf("Size(%d)=%d, Encode produced %d bytes", v, c.Size(v), len(buf))
		}
		got, n, err := c.Decode(buf)
		if err != nil {
			t.Fatalf("Decode(%d): %v", v, err)
		}
		if n != 8 || got != v {
			t.Fatalf("round trip mismatch: want %d, got %d (n=%d)", v, got, n)
		}
	}
}

// TestInt64Order verifies P2 (order preservation) for non-negative keys,
// which is the domain Zeebe actually relies on (element instance keys,
// due dates, and timer keys are monotonically increasing sequence
// numbers).
func TestInt64Order(t *testing.T) {
	c := Int64{}
	pairs := [][2]int64{{0, 1}, {1, 2}, {100, 1000}, {0, 1 << 50}}
	for _, p := range pairs {
		a, b := c.Encode(nil, p[0]), c.Encode(nil, p[1])
		if bytes.Compare(a, b) >= 0 {
			t.Fatalf("expected encode(%d) < encode(%d)", p[0], p[1])
		}
	}
}

func TestInt64Truncated(t *testing.T) {
	_, _, err := Int64{}.Decode([]byte{1, 2, 3})
	if err != ErrTruncated {
		t.Fatalf("want ErrTruncated, got %v", err)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	c := Bytes{}
	for _, v := range [][]byte{nil, {}, []byte("hello"), bytes.Repeat([]byte{0xAB}, 300)} {
		buf := c.Encode(nil, v)
		got, n, err := c.Decode(buf)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if n != len(buf) || !bytes.Equal(got, v) {
			t.Fatalf("round trip mismatch for %q", v)
		}
	}
}

func TestBytesTruncatedDeclaredLength(t *testing.T) {
	// Declares a length of 100 but only supplies 2 bytes.
	buf := append([]byte{0, 0, 0, 100}, []byte{1, 2}...)
	_, _, err := Bytes{}.Decode(buf)
	if err != ErrTruncated {
		t.Fatalf("want ErrTruncated, got %v", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	c := String{}
	for _, v := range []string{"", "message-name", "utf8-éè"} {
		buf := c.Encode(nil, v)
		got, n, err := c.Decode(buf)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if n != len(buf) || got != v {
			t.Fatalf("round trip mismatch for %q: got %q", v, got)
		}
	}
}

func TestNilCodec(t *testing.T) {
	c := Nil{}
	buf := c.Encode(nil, struct{}{})
	if len(buf) != 0 {
		t.Fatalf("want zero bytes, got %d", len(buf))
	}
	_, n, err := c.Decode(buf)
	if err != nil || n != 0 {
		t.Fatalf("Decode(nil value): n=%d err=%v", n, err)
	}
}

func TestComposite2RoundTripAndPrefix(t *testing.T) {
	c := Composite2[int64, string]{First: Int64{}, Second: String{}}
	v := Pair[int64, string]{First: 7, Second: "B"}

	buf := c.Encode(nil, v)
	got, n, err := c.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(buf) || got != v {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, v)
	}

	prefix := c.EncodePrefix(nil, v.First)
	if !bytes.HasPrefix(buf, prefix) {
		t.Fatalf("full encoding %x does not start with prefix %x", buf, prefix)
	}
}

func TestComposite2Order(t *testing.T) {
	c := Composite2[int64, string]{First: Int64{}, Second: String{}}
	a := c.Encode(nil, Pair[int64, string]{First: 7, Second: "A"})
	b := c.Encode(nil, Pair[int64, string]{First: 7, Second: "B"})
	d := c.Encode(nil, Pair[int64, string]{First: 9, Second: "A"})

	if bytes.Compare(a, b) >= 0 {
		t.Fatalf("expected (7,A) < (7,B)")
	}
	if bytes.Compare(b, d) >= 0 {
		t.Fatalf("expected (7,B) < (9,A)")
	}
}

func TestComposite3RoundTrip(t *testing.T) {
	c := Composite3[int64, int64, int64]{First: Int64{}, Second: Int64{}, Third: Int64{}}
	v := Triple[int64, int64, int64]{First: 100, Second: 1, Third: 10}
	buf := c.Encode(nil, v)
	got, n, err := c.Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(buf) || got != v {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, v)
	}

	prefix2 := c.EncodePrefix2(nil, v.First, v.Second)
	if !bytes.HasPrefix(buf, prefix2) {
		t.Fatalf("full encoding does not start with two-field prefix")
	}
}

func TestForeignKeyEncodingMatchesInner(t *testing.T) {
	inner := Int64{}
	fk := ForeignKey[int64]{Inner: inner, TargetCF: 99}

	a := inner.Encode(nil, 42)
	b := fk.Encode(nil, 42)
	if !bytes.Equal(a, b) {
		t.Fatalf("FK-wrapped encoding must equal inner encoding: %x vs %x", a, b)
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	for _, algo := range []string{"snappy", "lz4", "zstd", "none"} {
		t.Run(algo, func(t *testing.T) {
			var c Compressed[string]
			switch algo {
			case "snappy":
				c = Compressed[string]{Inner: String{}, Algo: 0x1}
			case "lz4":
				c = Compressed[string]{Inner: String{}, Algo: 0x4}
			case "zstd":
				c = Compressed[string]{Inner: String{}, Algo: 0x7}
			default:
				c = Compressed[string]{Inner: String{}, Algo: 0x0}
			}

			payload := "repeated-repeated-repeated-repeated-payload-bytes-for-compression"
			buf := c.Encode(nil, payload)
			got, n, err := c.Decode(buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if n != len(buf) || got != payload {
				t.Fatalf("round trip mismatch: got %q want %q", got, payload)
			}
		})
	}
}
