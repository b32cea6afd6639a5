// SPDX-License-Identifier: Apache-2.0

// Package party implements the client-side party session: the authoritative
// snapshot store, the local card queue and its reconciler, the lifecycle
// phase derivation, and the outbound command dispatcher.
//
// Everything in this package is single-threaded by contract. A Session is
// owned by one event loop (the TUI program); snapshots arrive through that
// loop in server order and user actions are applied between deliveries, so
// no internal locking is needed or provided.
package party
