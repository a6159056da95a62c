// Package compression provides the block-compression algorithms usable by
// the value-codec layer for large record payloads.
//
// Reference: RocksDB v10.7.5 util/compression.h/.cc describe the same
// one-byte-type-plus-payload framing this package follows; the algorithm
// set here is the subset RockyardKV ships without cgo.
package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a compression algorithm. Values are stable and persisted
// as a one-byte tag ahead of the compressed payload.
type Type uint8

const (
	// None performs no compression; the payload is stored as-is.
	None Type = 0x0
	// Snappy uses Google Snappy compression.
	Snappy Type = 0x1
	// LZ4 uses LZ4 compression.
	LZ4 Type = 0x4
	// Zstd uses Zstandard compression.
	Zstd Type = 0x7
)

// Compress compresses data using the given algorithm.
func Compress(t Type, data []byte) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case Snappy:
		return snappy.Encode(nil, data), nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("compression: lz4 write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("compression: lz4 close: %w", err)
		}
		return buf.Bytes(), nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("compression: zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	default:
		return nil, fmt.Errorf("compression: unsupported type %d", t)
	}
}

// Decompress reverses Compress.
func Decompress(t Type, data []byte) ([]byte, error) {
	switch t {
	case None:
		return data, nil
	case Snappy:
		return snappy.Decode(nil, data)
	case LZ4:
		r := lz4.NewReader(bytes.NewReader(data))
		return io.ReadAll(r)
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("compression: zstd decoder: %w", err)
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	default:
		return nil, fmt.Errorf("compression: unsupported type %d", t)
	}
}
