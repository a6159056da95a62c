package engine

// checksum.go guards every committed record with an XXH3 digest so a
// later recovery pass can detect silent corruption of the in-process
// store before the core ever sees a malformed value.
//
// Reference: RockyardKV's internal/checksum package wraps RocksDB's
// block-level CRC32C/XXHash checksums the same way; XXH3 is used here
// instead because it is the fastest hash the example pack carries and
// per-record (rather than per-block) checksumming has no SIMD-width
// alignment requirement to preserve.
import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/xxh3"
)

// checksumRecord returns the XXH3 digest of a (cf, key, value) record.
func checksumRecord(cf uint64, key, value []byte) uint64 {
	h := xxh3.New()
	var cfBuf [8]byte
	binary.BigEndian.PutUint64(cfBuf[:], cf)
	_, _ = h.Write(cfBuf[:])
	_, _ = h.Write(key)
	_, _ = h.Write(value)
	return h.Sum64()
}

// corruptionError reports a checksum mismatch discovered for a specific
// record during a recovery/verification pass.
type corruptionError struct {
	cf  uint64
	key []byte
}

func (e *corruptionError) Error() string {
	return fmt.Sprintf("engine: checksum mismatch for cf=%d key=%x", e.cf, e.key)
}

func (e *corruptionError) Unwrap() error { return ErrCorruption }
