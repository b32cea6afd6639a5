// SPDX-License-Identifier: Apache-2.0

// Package config assembles the go-party-swipe configuration from three
// layers merged in order: environment variables, command-line flags, and an
// optional JSON file. Earlier layers win; the JSON file only fills fields
// the other two left empty.
//
// Both binaries consume a narrowed view of the merged configuration:
// [GetClientConfig] for the swiping client and [GetServerConfig] for the
// party server.
package config
