// Package config provides configuration loading, merging, and validation
// facilities for the ledger node and the client.
//
// Configuration is assembled from multiple sources in the following order
// (a field set by an earlier source is kept):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The entry points are [GetLedgerConfig] for the ledger node and
// [GetClientConfig] for the client.
package config
