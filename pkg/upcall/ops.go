// Package upcall implements the asynchronous dispatch layer that lets a
// filesystem backend notify the server core of events (cache invalidation,
// attribute change, lock availability, layout recall, device notification,
// delegation recall) without blocking the backend's own goroutine.
//
// Every Async* call packages its arguments, including a private copy of the
// variable-length opaque key, into a self-contained task descriptor and hands
// it to a fridge worker pool. The synchronous return value reports only the
// submission outcome; the operation's own result is delivered through the
// optional completion callback, on a worker goroutine, or dropped if no
// callback was supplied.
//
// Ownership: on accepted submission the descriptor belongs to the pool and is
// released by the worker after the callback returns. On rejected submission
// it is released before the Async* call returns and the callback never runs.
// Exactly one of those two outcomes occurs for every call.
//
// The export embedded in a task is not reference-counted by this layer; the
// caller must keep it valid until the callback fires or submission fails.
package upcall

import (
	"context"

	"github.com/marmos91/upcalld/pkg/status"
)

// Ops is the capability table through which upcalls reach the server core.
// Each export supplies one; different backends can supply different behavior
// for the same upcall kind. Implementations may block: they run on fridge
// worker goroutines, never on the submitting goroutine.
type Ops interface {
	// Invalidate asks the core to invalidate cached state for the object
	// named by key.
	Invalidate(export Export, key []byte, flags InvalidateFlags) status.Status

	// Update pushes new attributes for the object named by key.
	Update(export Export, key []byte, attrs Attributes, flags UpdateFlags) status.Status

	// LockGrant notifies that a previously blocked lock has been granted.
	LockGrant(export Export, file []byte, owner LockOwner, param LockParam) status.StateStatus

	// LockAvail notifies that a contended lock may now be available.
	LockAvail(export Export, file []byte, owner LockOwner, param LockParam) status.StateStatus

	// LayoutRecall recalls a pNFS layout. spec is nil when the caller gave
	// no recall specification.
	LayoutRecall(export Export, handle []byte, layoutType LayoutType, changed bool,
		segment Segment, cookie any, spec *RecallSpec) status.StateStatus

	// NotifyDevice announces a device ID change or deletion. Device
	// notifications are not scoped to an object, so no key is carried.
	NotifyDevice(notifyType NotifyType, layoutType LayoutType, devid DeviceID,
		immediate bool) status.StateStatus

	// DelegRecall recalls a delegation on the object named by handle.
	DelegRecall(export Export, handle []byte) status.StateStatus
}

// Export represents a served filesystem instance. The dispatch layer only
// uses it to reach the capability table and to label logs and metrics; it
// never takes or releases a reference.
type Export interface {
	// UpOps returns the export's capability table.
	UpOps() Ops

	// ID returns a stable identifier for logs and metrics.
	ID() string
}

// Recallable is the narrow contract for the direct delegation-recall path
// (AsyncObjectDelegRecall): an object that can recall its own delegation
// without needing a key copy or completion notification.
type Recallable interface {
	DelegRecall(ctx context.Context) status.StateStatus
}
