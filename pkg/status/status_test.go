package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrno_BridgesEveryPoolErrno(t *testing.T) {
	tests := []struct {
		name  string
		errno Errno
		major Code
	}{
		{"Success", ErrnoSuccess, CodeOK},
		{"Again", ErrnoAgain, CodeDelay},
		{"NoMemory", ErrnoNoMemory, CodeNoMemory},
		{"Invalid", ErrnoInvalid, CodeInvalid},
		{"Pipe", ErrnoPipe, CodeFault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := FromErrno(tt.errno)
			assert.Equal(t, tt.major, st.Major)
			assert.Equal(t, tt.errno, st.Errno, "the raw errno must be preserved as the minor part")
		})
	}
}

func TestFromErrno_UnknownClassifiesAsServerFault(t *testing.T) {
	st := FromErrno(Errno(999))
	assert.Equal(t, CodeServerFault, st.Major)
	assert.Equal(t, Errno(999), st.Errno)
	assert.False(t, st.OK())
}

func TestStatus_OK(t *testing.T) {
	assert.True(t, OK().OK())
	assert.True(t, Status{}.OK())
	assert.False(t, Errorf(CodeDelay).OK())
	assert.False(t, Errorf(CodeServerFault).OK())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "OK", OK().String())
	assert.Equal(t, "Delay (EAGAIN)", FromErrno(ErrnoAgain).String())
	assert.Equal(t, "Fault (EPIPE)", FromErrno(ErrnoPipe).String())
}

func TestErrno_String(t *testing.T) {
	assert.Equal(t, "OK", ErrnoSuccess.String())
	assert.Equal(t, "EAGAIN", ErrnoAgain.String())
	assert.Equal(t, "ENOMEM", ErrnoNoMemory.String())
	assert.Equal(t, "EINVAL", ErrnoInvalid.String())
	assert.Equal(t, "EPIPE", ErrnoPipe.String())
	assert.Equal(t, "errno(7)", Errno(7).String())
}

func TestStateStatus_OK(t *testing.T) {
	assert.True(t, StateOK.OK())
	assert.False(t, StateLockConflict.OK())
	assert.False(t, StateError.OK())
}

func TestStateStatus_String(t *testing.T) {
	assert.Equal(t, "OK", StateOK.String())
	assert.Equal(t, "LockConflict", StateLockConflict.String())
	assert.Equal(t, "Grace", StateGrace.String())
	assert.Equal(t, "StateStatus(42)", StateStatus(42).String())
}
