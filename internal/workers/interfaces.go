// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's execution and must not block: implementations
// spawn their processing loop internally. Stop requests a graceful shutdown
// and blocks until in-flight work has finished.
type Worker interface {
	Run()
	Stop()
}
