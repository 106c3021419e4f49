package upcall

import (
	"github.com/marmos91/upcalld/internal/logger"
	"github.com/marmos91/upcalld/pkg/status"
)

// LoggingOps is a capability table that logs every upcall and reports
// success. It is the default table for exports whose backend has not wired
// real handlers yet, and doubles as a development backend for exercising
// the dispatch path end to end.
type LoggingOps struct{}

func (LoggingOps) Invalidate(export Export, key []byte, flags InvalidateFlags) status.Status {
	logger.Info("Upcall received",
		logger.KeyOp, "invalidate",
		logger.KeyExport, exportID(export),
		logger.KeyKeyLen, len(key),
		"flags", uint32(flags))
	return status.OK()
}

func (LoggingOps) Update(export Export, key []byte, attrs Attributes, flags UpdateFlags) status.Status {
	logger.Info("Upcall received",
		logger.KeyOp, "update",
		logger.KeyExport, exportID(export),
		logger.KeyKeyLen, len(key),
		"mask", uint32(attrs.Mask),
		"flags", uint32(flags))
	return status.OK()
}

func (LoggingOps) LockGrant(export Export, file []byte, owner LockOwner, param LockParam) status.StateStatus {
	logger.Info("Upcall received",
		logger.KeyOp, "lock_grant",
		logger.KeyExport, exportID(export),
		logger.KeyKeyLen, len(file),
		"owner", owner.ID,
		"lock_type", param.Type.String())
	return status.StateOK
}

func (LoggingOps) LockAvail(export Export, file []byte, owner LockOwner, param LockParam) status.StateStatus {
	logger.Info("Upcall received",
		logger.KeyOp, "lock_avail",
		logger.KeyExport, exportID(export),
		logger.KeyKeyLen, len(file),
		"owner", owner.ID,
		"lock_type", param.Type.String())
	return status.StateOK
}

func (LoggingOps) LayoutRecall(export Export, handle []byte, layoutType LayoutType,
	changed bool, segment Segment, cookie any, spec *RecallSpec) status.StateStatus {
	logger.Info("Upcall received",
		logger.KeyOp, "layout_recall",
		logger.KeyExport, exportID(export),
		logger.KeyKeyLen, len(handle),
		"layout_type", uint32(layoutType),
		"changed", changed,
		"has_spec", spec != nil)
	return status.StateOK
}

func (LoggingOps) NotifyDevice(notifyType NotifyType, layoutType LayoutType,
	devid DeviceID, immediate bool) status.StateStatus {
	logger.Info("Upcall received",
		logger.KeyOp, "notify_device",
		"notify_type", uint32(notifyType),
		"layout_type", uint32(layoutType),
		"device_id", devid.String(),
		"immediate", immediate)
	return status.StateOK
}

func (LoggingOps) DelegRecall(export Export, handle []byte) status.StateStatus {
	logger.Info("Upcall received",
		logger.KeyOp, "deleg_recall",
		logger.KeyExport, exportID(export),
		logger.KeyKeyLen, len(handle))
	return status.StateOK
}

// LoopbackExport is a minimal export backed by LoggingOps. Useful for
// development and for backends that only need the dispatch plumbing.
type LoopbackExport struct {
	Name string
}

func (e *LoopbackExport) UpOps() Ops { return LoggingOps{} }
func (e *LoopbackExport) ID() string { return e.Name }
