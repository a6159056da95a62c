/*
Package zeebe provides the persistent, transactional column-family
substrate underpinning a distributed workflow-orchestration engine's
stream processors.

It exposes a typed column-family abstraction over an embedded
key-value engine adapter (internal/engine, which ships an in-memory
skip-list reference implementation), augmented with
transactional writes, composite key/value codecs (package codec), and
optional foreign-key checking across column families.

# Usage

A process creates an Engine adapter, wraps it in a Transaction that is
begun once per input record, opens typed tables (package table) bound to that
transaction's column families, and commits or aborts once the record
has been fully processed.

# Concurrency

Exactly one execution context drives a given partition's transaction
and tables at a time; there is no internal locking. Multiple
partitions may run concurrently, each against its own Transaction,
Options, and table instances.

Reference: Camunda Zeebe's zb-db / engine state substrate.
*/
package zeebe
