// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI flows, the party API handshake, and the websocket
// transport into a single process lifecycle: join a party, run the swiping
// session, and loop back to the join flow when the party ends with a fault.
package client
