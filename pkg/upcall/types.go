package upcall

import (
	"time"

	"github.com/google/uuid"
)

// InvalidateFlags selects which cached state an invalidate upcall targets.
type InvalidateFlags uint32

const (
	// InvalidateAttrs invalidates cached attributes.
	InvalidateAttrs InvalidateFlags = 1 << iota

	// InvalidateACL invalidates the cached ACL.
	InvalidateACL

	// InvalidateContent invalidates cached file content.
	InvalidateContent

	// InvalidateDirectory invalidates cached directory entries.
	InvalidateDirectory

	// InvalidateClose asks the core to close open handles on the object.
	InvalidateClose
)

// UpdateFlags qualifies an attribute-update upcall.
type UpdateFlags uint32

const (
	// UpdateSizeGrowOnly applies the size only if larger than the cached one.
	UpdateSizeGrowOnly UpdateFlags = 1 << iota

	// UpdateInvalidate invalidates whatever the attribute set does not cover.
	UpdateInvalidate
)

// AttrMask marks which fields of an Attributes value are meaningful.
type AttrMask uint32

const (
	AttrSize AttrMask = 1 << iota
	AttrMode
	AttrOwner
	AttrGroup
	AttrAtime
	AttrMtime
	AttrCtime
	AttrNumLinks
)

// Attributes is the attribute set carried by an update upcall. It is stored
// by value in the task descriptor; only fields named in Mask are meaningful.
type Attributes struct {
	Mask     AttrMask
	Size     uint64
	Mode     uint32
	UID      uint32
	GID      uint32
	NumLinks uint32
	Atime    time.Time
	Mtime    time.Time
	Ctime    time.Time
}

// LockType represents the type of lock (shared or exclusive).
type LockType int

const (
	// LockTypeShared is a shared (read) lock.
	LockTypeShared LockType = iota

	// LockTypeExclusive is an exclusive (write) lock.
	LockTypeExclusive
)

// String returns a human-readable name for the lock type.
func (lt LockType) String() string {
	switch lt {
	case LockTypeShared:
		return "shared"
	case LockTypeExclusive:
		return "exclusive"
	default:
		return "unknown"
	}
}

// LockOwner identifies the owner of a lock. The ID is an opaque
// protocol-provided string; this layer never parses it, it only carries it
// through to the capability table.
type LockOwner struct {
	ID string
}

// LockParam describes the byte range and kind of a lock upcall.
type LockParam struct {
	Type    LockType
	Offset  uint64
	Length  uint64
	Reclaim bool
}

// LayoutType identifies a pNFS layout class.
type LayoutType uint32

const (
	// LayoutFiles is the NFSv4.1 files layout.
	LayoutFiles LayoutType = 1

	// LayoutObjects is the OSD2 objects layout.
	LayoutObjects LayoutType = 2

	// LayoutBlocks is the block volume layout.
	LayoutBlocks LayoutType = 3
)

// IOMode is the access mode of a layout segment.
type IOMode uint32

const (
	// IOModeRead covers read-only segments.
	IOModeRead IOMode = 1

	// IOModeReadWrite covers read/write segments.
	IOModeReadWrite IOMode = 2

	// IOModeAny matches segments of either mode; only valid in recalls.
	IOModeAny IOMode = 3
)

// Segment describes the layout byte range a recall applies to.
type Segment struct {
	IOMode IOMode
	Offset uint64
	Length uint64
}

// RecallHow discriminates the optional layout-recall specification. The
// specification is stored by value inside the task descriptor, so absence is
// encoded with the RecallNotSpecified tag rather than a nil reference.
type RecallHow int

const (
	// RecallNotSpecified marks an absent specification.
	RecallNotSpecified RecallHow = iota

	// RecallExactly recalls exactly the layouts held by Client.
	RecallExactly

	// RecallComplement recalls the layouts held by everyone but Client.
	RecallComplement
)

// RecallSpec narrows a layout recall to a particular client's holdings.
type RecallSpec struct {
	How    RecallHow
	Client uint64
}

// NotifyType is the kind of device notification.
type NotifyType uint32

const (
	// NotifyDeviceChange announces that a device's address list changed.
	NotifyDeviceChange NotifyType = 1

	// NotifyDeviceDelete announces that a device ID was retired.
	NotifyDeviceDelete NotifyType = 2
)

// DeviceID is the 16-byte pNFS device identifier.
type DeviceID = uuid.UUID
