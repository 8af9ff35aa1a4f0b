package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: no backend loaded
	Error string `json:"error"`
	// HTTP status code.
	// example: 503
	Code int `json:"code"`
}

// WorkerStatus summarizes one worker slot for /status.
type WorkerStatus struct {
	// example: 0
	Slot int `json:"slot"`
	// example: cuda:0
	Device string `json:"device"`
	// Lifecycle state: pending, ready, closed or failed.
	// example: ready
	State string `json:"state"`
	// Reads processed by this slot.
	// example: 120
	Reads uint64 `json:"reads"`
	// Reads that failed on this slot.
	// example: 1
	Failures uint64 `json:"failures"`
	// Last error observed on this slot.
	LastError string `json:"last_error,omitempty"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Overall state: idle, running or done.
	// example: running
	State string `json:"state"`
	// Identifier of the current run, empty until the pool starts.
	// example: 0f8d4c1e-6a3b-4f7e-9c2d-5b1a8e7f6d40
	RunID   string         `json:"run_id,omitempty"`
	Model   *ModelInfo     `json:"model,omitempty"`
	Workers []WorkerStatus `json:"workers"`
	// example: 1200
	ReadsTotal uint64 `json:"reads_total"`
	// example: 3
	FailuresTotal uint64 `json:"failures_total"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix"`
}
