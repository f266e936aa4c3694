/*
Package eventlog implements an append-only log of events emitted by other
extensions.

Events are stored under a monotonically increasing sequence key and indexed
by the contract that emitted them. There is no way to update or delete an
event. Events are written to the same store as the transaction that emits
them, so a transaction that is rolled back leaves no trace in the log.
*/
package eventlog
