package zeebe

// foreign_key_checker.go implements §4.5: a single, centralized check
// consulted by every FK-guarded ColumnFamily so table code stays ignorant
// of integrity policy.

import "github.com/TitanUser/zeebe/internal/logging"

// ForeignKeyChecker verifies that an FK-tagged key refers to a live row
// in its target column family, as visible within the current
// transaction's overlay (§4.5).
type ForeignKeyChecker struct {
	enabled bool
	logger  logging.Logger
}

// NewForeignKeyChecker creates a checker honoring opts.EnablePreconditions
// (§4.6). The enabled flag is fixed at construction and never mutated
// (§9, "Global option").
func NewForeignKeyChecker(opts Options) *ForeignKeyChecker {
	return &ForeignKeyChecker{
		enabled: opts.EnablePreconditions,
		logger:  logging.OrDefault(opts.Logger),
	}
}

// AssertExists fails with IntegrityError if encodedKey is absent from
// targetCF within txn's view (committed state plus its own overlay).
func (c *ForeignKeyChecker) AssertExists(txn *Transaction, targetCF uint64, encodedKey []byte) error {
	_, found, err := txn.Get(targetCF, encodedKey)
	if err != nil {
		return err
	}
	if !found {
		c.logger.Warnf("%sforeign key %x missing from column family %d", logging.NSFK, encodedKey, targetCF)
		return &IntegrityError{FK: encodedKey, TargetCF: targetCF}
	}
	return nil
}
