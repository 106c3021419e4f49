package logger

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so that dispatch
// logs can be aggregated and queried by operation kind and export.
const (
	// Upcall dispatch
	KeyOp     = "op"     // Upcall kind: invalidate, update, lock_grant, ...
	KeyExport = "export" // Export identifier the upcall targets
	KeyKeyLen = "keylen" // Length of the opaque key/handle in bytes
	KeyStatus = "status" // Operation or submission status
	KeyErrno  = "errno"  // POSIX-style errno from the pool collaborator

	// Worker pool
	KeyWorker  = "worker"  // Worker goroutine index
	KeyPending = "pending" // Tasks accepted but not yet finished
	KeyQueue   = "queue"   // Queue capacity

	// Timing
	KeyDurationMs = "duration_ms" // Elapsed time in milliseconds

	// Errors
	KeyError = "error" // Error value
)
