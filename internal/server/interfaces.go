package server

// Server is the lifecycle contract the composition root drives: RunServer
// blocks until a stop signal arrives and the listener has drained, Shutdown
// asks the server to stop serving and release its resources.
type Server interface {
	// RunServer starts serving and blocks until the server has stopped.
	RunServer()

	// Shutdown stops the server gracefully.
	Shutdown()
}
