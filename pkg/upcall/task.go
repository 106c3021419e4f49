package upcall

import (
	"context"
	"time"

	"github.com/marmos91/upcalld/internal/logger"
	"github.com/marmos91/upcalld/internal/telemetry"
	"github.com/marmos91/upcalld/pkg/bufpool"
	"github.com/marmos91/upcalld/pkg/fridge"
	"github.com/marmos91/upcalld/pkg/status"
)

// Operation kind names used in logs, metrics and trace spans.
const (
	opInvalidate   = "invalidate"
	opUpdate       = "update"
	opLockGrant    = "lock_grant"
	opLockAvail    = "lock_avail"
	opLayoutRecall = "layout_recall"
	opNotifyDevice = "notify_device"
	opDelegRecall  = "deleg_recall"
)

// Callback receives the result of a generic-status upcall. It runs on a
// fridge worker goroutine, synchronously within the worker entry point;
// long blocking work inside it delays that worker's availability.
type Callback func(arg any, st status.Status)

// StateCallback receives the result of a lock-state upcall. Same execution
// rules as Callback.
type StateCallback func(arg any, st status.StateStatus)

// result is the constraint over the two status domains a task can complete
// with.
type result interface {
	OK() bool
	String() string
}

// task is the self-contained descriptor for one upcall. All fixed arguments
// are captured by value in the op closure at packaging time; the key/handle
// bytes live in a pooled buffer private to the task. After a successful
// submission the task belongs exclusively to the fridge worker, which runs
// the operation, fires the callback and releases the buffer, strictly in
// that order.
type task[S result] struct {
	kind   string
	export Export
	key    []byte // backed by keyBuf; nil when the op carries no key
	keyBuf []byte // pooled backing buffer, returned on release
	cb     func(arg any, st S)
	cbArg  any
	op     func(t *task[S]) S
}

// packTask builds a task descriptor, copying the key bytes into a pooled
// buffer. The caller's key slice is never retained: it may be mutated or
// garbage collected the moment packTask returns. A nil key means the
// operation carries no key at all; an empty non-nil key is copied as a
// zero-length key.
func packTask[S result](kind string, export Export, key []byte,
	cb func(arg any, st S), cbArg any, op func(t *task[S]) S) *task[S] {

	t := &task[S]{
		kind:   kind,
		export: export,
		cb:     cb,
		cbArg:  cbArg,
		op:     op,
	}

	if key != nil {
		t.keyBuf = bufpool.Get(len(key))
		copy(t.keyBuf, key)
		t.key = t.keyBuf
	}

	return t
}

// run is the worker entry point. It executes on a fridge worker goroutine,
// asynchronously with respect to the submitter.
func (t *task[S]) run(ctx context.Context) {
	// Release is unconditional and strictly after the callback.
	defer t.release()

	_, span := telemetry.StartUpcallSpan(ctx, t.kind, exportID(t.export),
		telemetry.KeyLen(len(t.key)))
	defer span.End()

	start := time.Now()
	st := t.op(t)
	observeCompleted(t.kind, st.OK(), time.Since(start))
	span.SetAttributes(telemetry.Status(st.String()))

	logger.Debug("Upcall executed",
		logger.KeyOp, t.kind,
		logger.KeyExport, exportID(t.export),
		logger.KeyStatus, st.String(),
		logger.KeyDurationMs, logger.Duration(start))

	if t.cb != nil {
		t.cb(t.cbArg, st)
	}
}

// release returns the key buffer to the pool. The inline key must never be
// referenced after this point.
func (t *task[S]) release() {
	if t.keyBuf != nil {
		bufpool.Put(t.keyBuf)
		t.keyBuf = nil
	}
	t.key = nil
}

// submit hands the task to the fridge. On acceptance, ownership transfers
// to the pool and the returned status is OK: "accepted for asynchronous
// execution", not "completed". On rejection the task is released here, the
// callback will never run, and the pool's errno comes back bridged into the
// filesystem status domain.
func submit[S result](fr *fridge.Fridge, t *task[S]) status.Status {
	observeSubmitted(t.kind)

	if err := fr.Submit(t.run); err != nil {
		t.release()
		rc := fridge.ErrnoOf(err)
		observeRejected(t.kind, rc)
		logger.Warn("Upcall submission rejected",
			logger.KeyOp, t.kind,
			logger.KeyExport, exportID(t.export),
			logger.KeyErrno, rc.String())
		return status.FromErrno(rc)
	}

	return status.OK()
}

func exportID(export Export) string {
	if export == nil {
		return ""
	}
	return export.ID()
}
