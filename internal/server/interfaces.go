package server

// Server is the ledger node as a whole: RunServer blocks until a stop
// signal arrives, Shutdown closes every listener that was started.
type Server interface {
	RunServer()
	Shutdown()
}
