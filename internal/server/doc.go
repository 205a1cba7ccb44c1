// Package server runs the ledger node's listeners.
//
// The HTTP listener serves the ledger API and metrics; the gRPC listener
// carries the health service that load balancers poll. Both stop together
// on SIGINT, SIGTERM or SIGQUIT.
package server
