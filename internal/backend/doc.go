// Package backend selects, configures and drives the inference backend of
// the basecaller. Two mutually exclusive backends share one contract:
//
//   - compiled: a CPU-only compiled flip-flop network addressed by name.
//   - trained: a trained model file run chunk by chunk on a CPU or device.
//
// Files are split by concern:
//
//   - spec.go: ModelSpec and its validation.
//   - backend.go: Backend/Worker contract, Weights, New.
//   - runtime.go: runtime collaborator interfaces and registration.
//   - runtime_stub.go: stubs used when no runtime was registered.
//   - compiled.go, trained.go: the two implementations.
//   - info.go: JSON projection of a Backend.
//   - metrics.go: prometheus collectors.
//
// A Backend is built once at startup and is immutable. Each worker slot
// calls PrepWorker exactly once with its assigned device, then RunModel
// sequentially; a Worker is owned by a single goroutine.
package backend
