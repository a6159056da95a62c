package zeebe

// errors.go defines the error kinds of §7: DecodeError, IntegrityError,
// EngineError, CorruptionError. Every kind wraps a stable sentinel so
// callers can use errors.Is/errors.As regardless of which concrete
// codec, column family, or table raised it.
//
// Reference: RockyardKV's db/*_error*.go files wrap sentinels the same
// way (ErrColumnFamilyNotFound, ErrInvalidColumnFamilyHandle, ...).

import (
	"errors"
	"fmt"

	"github.com/TitanUser/zeebe/internal/engine"
)

// ErrDecode is the sentinel wrapped by every DecodeError.
var ErrDecode = errors.New("zeebe: decode error")

// ErrIntegrity is the sentinel wrapped by every IntegrityError.
var ErrIntegrity = errors.New("zeebe: foreign key integrity violation")

// ErrEngine is the sentinel wrapped by every EngineError.
var ErrEngine = errors.New("zeebe: engine error")

// ErrCorruption is the sentinel wrapped by every CorruptionError.
var ErrCorruption = errors.New("zeebe: corruption detected")

// DecodeError reports malformed bytes encountered while decoding a key or
// value. It is fatal for the record being processed.
type DecodeError struct {
	// Cause is the codec-level error: codec.ErrTruncated or
	// codec.ErrInvalidLength, or a decompression error from a
	// codec.Compressed value codec.
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("zeebe: decode error: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

// newDecodeError wraps a codec-level error as a DecodeError, unless err is
// nil, in which case it returns nil.
func newDecodeError(err error) error {
	if err == nil {
		return nil
	}
	return &DecodeError{Cause: err}
}

// IntegrityError reports a foreign-key violation detected by the
// ForeignKeyChecker while preconditions are enabled (§4.5, §4.6).
type IntegrityError struct {
	FK       []byte
	TargetCF uint64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("zeebe: foreign key %x does not exist in target column family %d", e.FK, e.TargetCF)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

// EngineError wraps an error surfaced by the adapter (internal/engine)
// during a transactional operation.
type EngineError struct {
	Cause error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("zeebe: engine error: %v", e.Cause)
}

func (e *EngineError) Unwrap() error { return ErrEngine }

// CorruptionError wraps an adapter-reported corruption, raised on startup
// and never recoverable by the core (§7).
type CorruptionError struct {
	Cause error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("zeebe: corruption detected: %v", e.Cause)
}

func (e *CorruptionError) Unwrap() error { return ErrCorruption }

// wrapEngineErr classifies an error returned by internal/engine into the
// core's own error kinds, so callers above this package never see a raw
// engine.ErrCorruption.
func wrapEngineErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, engine.ErrCorruption) {
		return &CorruptionError{Cause: err}
	}
	return &EngineError{Cause: err}
}
