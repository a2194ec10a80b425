package server

// Server is the lifecycle contract of a transport server. RunServer blocks
// until the process is told to stop; Shutdown drains in-flight requests and
// releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
