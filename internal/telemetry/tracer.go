package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for upcall dispatch spans.
// Dispatch-level keys use the "upcall." prefix; pool-level keys use
// "fridge.".
const (
	AttrOp     = "upcall.op"     // Upcall kind: invalidate, update, ...
	AttrExport = "upcall.export" // Export identifier
	AttrKey    = "upcall.key"    // Opaque key/handle, hex-encoded
	AttrKeyLen = "upcall.keylen" // Key/handle length in bytes
	AttrStatus = "upcall.status" // Operation status string
	AttrErrno  = "upcall.errno"  // Pool rejection errno

	AttrWorker  = "fridge.worker"  // Worker goroutine index
	AttrPending = "fridge.pending" // Tasks accepted but not finished
)

// Op returns an attribute for the upcall kind.
func Op(op string) attribute.KeyValue {
	return attribute.String(AttrOp, op)
}

// ExportID returns an attribute for the export identifier.
func ExportID(id string) attribute.KeyValue {
	return attribute.String(AttrExport, id)
}

// Key returns an attribute carrying the opaque key in hex.
func Key(key []byte) attribute.KeyValue {
	return attribute.String(AttrKey, fmt.Sprintf("%x", key))
}

// KeyLen returns an attribute for the key length.
func KeyLen(n int) attribute.KeyValue {
	return attribute.Int(AttrKeyLen, n)
}

// Status returns an attribute for an operation status string.
func Status(st string) attribute.KeyValue {
	return attribute.String(AttrStatus, st)
}

// Errno returns an attribute for a pool rejection errno.
func Errno(rc string) attribute.KeyValue {
	return attribute.String(AttrErrno, rc)
}

// StartUpcallSpan starts a span for the execution of one upcall on a
// worker goroutine.
func StartUpcallSpan(ctx context.Context, op, exportID string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		Op(op),
	}
	if exportID != "" {
		allAttrs = append(allAttrs, ExportID(exportID))
	}
	allAttrs = append(allAttrs, attrs...)

	return StartSpan(ctx, "upcall."+op, trace.WithAttributes(allAttrs...))
}
