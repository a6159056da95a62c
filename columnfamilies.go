package zeebe

// columnfamilies.go assigns the stable cf_id values of §3.1/§6.3. These
// form a schema: once released, an id is never reassigned or reused.
const (
	// ElementInstanceCF holds element-instance records (§4.4.3), the
	// target of every FK reference from subscriptions and timers.
	ElementInstanceCF uint64 = 1

	// ProcessSubscriptionByKeyCF holds subscription records keyed by
	// (element_instance_key, message_name) (§4.4.1).
	ProcessSubscriptionByKeyCF uint64 = 2

	// TimersCF holds timer records keyed by (element_instance_key,
	// timer_key) (§4.4.2).
	TimersCF uint64 = 3

	// TimerDueDatesCF is the secondary due-date index over TimersCF
	// (§4.4.2).
	TimerDueDatesCF uint64 = 4
)
