package upcall

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/upcalld/pkg/fridge"
	"github.com/marmos91/upcalld/pkg/status"
)

func TestLoopbackExport_AcceptsEveryUpcallKind(t *testing.T) {
	fr := startedFridge(t, fridge.DefaultConfig())
	export := &LoopbackExport{Name: "loop1"}

	coll := newStatusCollector()
	st := AsyncInvalidate(fr, export, []byte("k"), InvalidateAttrs, coll.cb, nil)
	require.True(t, st.OK())
	coll.wait(t)
	_, stats := coll.collected()
	assert.True(t, stats[0].OK())

	st = AsyncUpdate(fr, export, []byte("k"), Attributes{Mask: AttrSize, Size: 1},
		0, nil, nil)
	require.True(t, st.OK())

	state := newStateCollector()
	st = AsyncLockGrant(fr, export, []byte("f"), LockOwner{ID: "o"}, LockParam{}, state.cb, nil)
	require.True(t, st.OK())
	state.wait(t)
	_, sstats := state.collected()
	assert.Equal(t, status.StateOK, sstats[0])

	st = AsyncLockAvail(fr, export, []byte("f"), LockOwner{ID: "o"}, LockParam{}, nil, nil)
	require.True(t, st.OK())

	st = AsyncLayoutRecall(fr, export, []byte("h"), LayoutFiles, false,
		Segment{IOMode: IOModeAny}, nil, nil, nil, nil)
	require.True(t, st.OK())

	st = AsyncNotifyDevice(fr, export, NotifyDeviceChange, LayoutFiles,
		uuid.New(), false, nil, nil)
	require.True(t, st.OK())

	st = AsyncDelegRecall(fr, export, []byte("h"), nil, nil)
	require.True(t, st.OK())
}
