// Package status provides the status domains used by the upcall dispatch
// layer. This is a leaf package with no internal dependencies, designed to be
// imported by both the fridge (worker pool) package and the upcall package
// without causing circular imports.
//
// Two independent domains exist:
//
//   - Status: the generic filesystem status returned by cache-invalidation
//     style operations and by every Async* entry point (where it reports the
//     submission outcome only).
//   - StateStatus: the lock-state status returned by lock, layout and
//     delegation operations.
//
// Import graph: status <- fridge <- upcall
package status

import "fmt"

// Errno is the small-integer POSIX-style error domain used by the worker
// pool collaborator. Values match the conventional Linux numbering; the
// bridge only ever sees the handful produced by pool submission.
type Errno int

const (
	// ErrnoSuccess indicates the submission was accepted.
	ErrnoSuccess Errno = 0

	// ErrnoAgain indicates the pool queue is saturated (EAGAIN).
	ErrnoAgain Errno = 11

	// ErrnoNoMemory indicates resource exhaustion (ENOMEM).
	ErrnoNoMemory Errno = 12

	// ErrnoInvalid indicates an invalid pool configuration (EINVAL).
	ErrnoInvalid Errno = 22

	// ErrnoPipe indicates the pool is not running or shutting down (EPIPE).
	ErrnoPipe Errno = 32
)

// String returns a human-readable name for the errno.
func (e Errno) String() string {
	switch e {
	case ErrnoSuccess:
		return "OK"
	case ErrnoAgain:
		return "EAGAIN"
	case ErrnoNoMemory:
		return "ENOMEM"
	case ErrnoInvalid:
		return "EINVAL"
	case ErrnoPipe:
		return "EPIPE"
	default:
		return fmt.Sprintf("errno(%d)", int(e))
	}
}

// Code is the generic filesystem status code (the major part of a Status).
type Code int

const (
	// CodeOK indicates success.
	CodeOK Code = iota

	// CodeDelay indicates a transient condition; the caller may retry
	// by issuing a new call (this layer never retries).
	CodeDelay

	// CodeNoMemory indicates resource exhaustion.
	CodeNoMemory

	// CodeInvalid indicates an invalid argument or configuration.
	CodeInvalid

	// CodeFault indicates the collaborator is unavailable or misbehaving.
	CodeFault

	// CodeIOError indicates an I/O error in the backend operation.
	CodeIOError

	// CodeStale indicates the key or handle no longer names a live object.
	CodeStale

	// CodeNotSupported indicates the backend does not implement the
	// requested upcall.
	CodeNotSupported

	// CodeServerFault indicates an unclassified internal error.
	CodeServerFault
)

// String returns a human-readable name for the code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeDelay:
		return "Delay"
	case CodeNoMemory:
		return "NoMemory"
	case CodeInvalid:
		return "Invalid"
	case CodeFault:
		return "Fault"
	case CodeIOError:
		return "IOError"
	case CodeStale:
		return "Stale"
	case CodeNotSupported:
		return "NotSupported"
	case CodeServerFault:
		return "ServerFault"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Status is the generic filesystem status. Major carries the classified
// outcome; Errno preserves the raw error from the originating domain for
// diagnostics, mirroring the usual major/minor status pair.
type Status struct {
	Major Code
	Errno Errno
}

// OK reports whether the status indicates success.
func (s Status) OK() bool {
	return s.Major == CodeOK
}

// String renders the status for logs.
func (s Status) String() string {
	if s.Major == CodeOK {
		return "OK"
	}
	return fmt.Sprintf("%s (%s)", s.Major, s.Errno)
}

// OK returns the success status.
func OK() Status {
	return Status{}
}

// Errorf builds a non-OK status with the given major code.
func Errorf(major Code) Status {
	return Status{Major: major}
}

// FromErrno is the fixed conversion from the pool-submission error domain
// to the filesystem status domain. It is total: unknown errnos classify as
// server faults rather than panicking.
func FromErrno(rc Errno) Status {
	var major Code
	switch rc {
	case ErrnoSuccess:
		major = CodeOK
	case ErrnoAgain:
		major = CodeDelay
	case ErrnoNoMemory:
		major = CodeNoMemory
	case ErrnoInvalid:
		major = CodeInvalid
	case ErrnoPipe:
		major = CodeFault
	default:
		major = CodeServerFault
	}
	return Status{Major: major, Errno: rc}
}

// StateStatus is the lock-state status domain used by lock grant/avail,
// layout recall, device notification and delegation recall upcalls.
type StateStatus int

const (
	// StateOK indicates success.
	StateOK StateStatus = iota

	// StateLockConflict indicates a conflicting lock holder.
	StateLockConflict

	// StateLockBlocked indicates the request would block.
	StateLockBlocked

	// StateLockDeadlock indicates granting would deadlock.
	StateLockDeadlock

	// StateBadHandle indicates the file key or handle is invalid.
	StateBadHandle

	// StateNotFound indicates no matching state exists.
	StateNotFound

	// StateStale indicates the object behind the handle is gone.
	StateStale

	// StateGrace indicates the operation is blocked by a grace period.
	StateGrace

	// StateError indicates an unclassified state-machine failure.
	StateError
)

// String returns a human-readable name for the state status.
func (s StateStatus) String() string {
	switch s {
	case StateOK:
		return "OK"
	case StateLockConflict:
		return "LockConflict"
	case StateLockBlocked:
		return "LockBlocked"
	case StateLockDeadlock:
		return "LockDeadlock"
	case StateBadHandle:
		return "BadHandle"
	case StateNotFound:
		return "NotFound"
	case StateStale:
		return "Stale"
	case StateGrace:
		return "Grace"
	case StateError:
		return "Error"
	default:
		return fmt.Sprintf("StateStatus(%d)", int(s))
	}
}

// OK reports whether the state status indicates success.
func (s StateStatus) OK() bool {
	return s == StateOK
}
