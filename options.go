package zeebe

import "github.com/TitanUser/zeebe/internal/logging"

// Options configures the substrate at construction. Per §6.4 there is a
// single recognized behavioral option; Logger is part of the ambient
// stack, not a behavioral knob.
type Options struct {
	// EnablePreconditions turns on ForeignKeyChecker.AssertExists for
	// every FK-guarded write (§4.6). Default false.
	EnablePreconditions bool

	// Logger receives diagnostic output. Never nil after DefaultOptions
	// or logging.OrDefault has run over it.
	Logger logging.Logger
}

// DefaultOptions returns the zero-value-equivalent configuration:
// preconditions disabled, logging at warn level to stderr.
func DefaultOptions() Options {
	return Options{
		EnablePreconditions: false,
		Logger:              logging.NewDefaultLogger(logging.LevelWarn),
	}
}
