package upcall

import (
	"context"

	"github.com/marmos91/upcalld/pkg/fridge"
	"github.com/marmos91/upcalld/pkg/status"
)

// AsyncInvalidate queues a cache-invalidation upcall for the object named
// by key. The returned status reports the submission outcome only; the
// invalidation result reaches cb (if non-nil) on a worker goroutine.
func AsyncInvalidate(fr *fridge.Fridge, export Export, key []byte,
	flags InvalidateFlags, cb Callback, cbArg any) status.Status {

	t := packTask(opInvalidate, export, key, cb, cbArg,
		func(t *task[status.Status]) status.Status {
			return t.export.UpOps().Invalidate(t.export, t.key, flags)
		})

	return submit(fr, t)
}

// AsyncUpdate queues an attribute-update upcall. The attribute set is
// copied by value at packaging time.
func AsyncUpdate(fr *fridge.Fridge, export Export, key []byte,
	attrs Attributes, flags UpdateFlags, cb Callback, cbArg any) status.Status {

	t := packTask(opUpdate, export, key, cb, cbArg,
		func(t *task[status.Status]) status.Status {
			return t.export.UpOps().Update(t.export, t.key, attrs, flags)
		})

	return submit(fr, t)
}

// AsyncLockGrant queues a lock-grant upcall for the file named by file.
func AsyncLockGrant(fr *fridge.Fridge, export Export, file []byte,
	owner LockOwner, param LockParam, cb StateCallback, cbArg any) status.Status {

	t := packTask(opLockGrant, export, file, cb, cbArg,
		func(t *task[status.StateStatus]) status.StateStatus {
			return t.export.UpOps().LockGrant(t.export, t.key, owner, param)
		})

	return submit(fr, t)
}

// AsyncLockAvail queues a lock-availability upcall for the file named by
// file.
func AsyncLockAvail(fr *fridge.Fridge, export Export, file []byte,
	owner LockOwner, param LockParam, cb StateCallback, cbArg any) status.Status {

	t := packTask(opLockAvail, export, file, cb, cbArg,
		func(t *task[status.StateStatus]) status.StateStatus {
			return t.export.UpOps().LockAvail(t.export, t.key, owner, param)
		})

	return submit(fr, t)
}

// AsyncLayoutRecall queues a layout-recall upcall for the object named by
// handle. A nil spec is stored with the not-specified tag and surfaces as
// nil again at the capability table, never as a zero-valued specification.
func AsyncLayoutRecall(fr *fridge.Fridge, export Export, handle []byte,
	layoutType LayoutType, changed bool, segment Segment, cookie any,
	spec *RecallSpec, cb StateCallback, cbArg any) status.Status {

	specVal := RecallSpec{How: RecallNotSpecified}
	if spec != nil {
		specVal = *spec
	}

	t := packTask(opLayoutRecall, export, handle, cb, cbArg,
		func(t *task[status.StateStatus]) status.StateStatus {
			var sp *RecallSpec
			if specVal.How != RecallNotSpecified {
				sp = &specVal
			}
			return t.export.UpOps().LayoutRecall(t.export, t.key, layoutType,
				changed, segment, cookie, sp)
		})

	return submit(fr, t)
}

// AsyncNotifyDevice queues a device-notification upcall. Device
// notifications carry no key, so no trailing buffer is allocated.
func AsyncNotifyDevice(fr *fridge.Fridge, export Export,
	notifyType NotifyType, layoutType LayoutType, devid DeviceID,
	immediate bool, cb StateCallback, cbArg any) status.Status {

	t := packTask(opNotifyDevice, export, nil, cb, cbArg,
		func(t *task[status.StateStatus]) status.StateStatus {
			return t.export.UpOps().NotifyDevice(notifyType, layoutType,
				devid, immediate)
		})

	return submit(fr, t)
}

// AsyncDelegRecall queues a delegation-recall upcall for the object named
// by handle.
func AsyncDelegRecall(fr *fridge.Fridge, export Export, handle []byte,
	cb StateCallback, cbArg any) status.Status {

	t := packTask(opDelegRecall, export, handle, cb, cbArg,
		func(t *task[status.StateStatus]) status.StateStatus {
			return t.export.UpOps().DelegRecall(t.export, t.key)
		})

	return submit(fr, t)
}

// AsyncObjectDelegRecall is the direct delegation-recall path: it submits
// the caller's object reference to the fridge without packaging, and the
// worker calls DelegRecall on it directly, dropping the result. No key is
// copied and no callback fires; the only failure reporting is the raw
// fridge error returned here. This is a deliberately narrower, best-effort
// contract for callers that already hold a stable reference to the object
// and do not need completion notification.
func AsyncObjectDelegRecall(fr *fridge.Fridge, obj Recallable) error {
	return fr.Submit(func(ctx context.Context) {
		_ = obj.DelegRecall(ctx)
	})
}
