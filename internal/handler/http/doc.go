// Package http exposes the consent ledger over HTTP.
//
// Transactions are posted to /api/ledger/tx and applied by the rule
// processor; state and the audit chain are read through the GET routes under
// /api/ledger. Error bodies are the app.Msg* strings, which the client
// adapter maps back to ledger errors. Tracing, access logging and response
// compression are handled here before requests reach the service layer.
package http
