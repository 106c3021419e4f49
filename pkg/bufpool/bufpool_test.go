package bufpool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Buffer Allocation Tests
// ============================================================================

func TestBufferAllocation(t *testing.T) {
	t.Run("AllocatesSmallBuffer", func(t *testing.T) {
		buf := Get(100)
		defer Put(buf)

		assert.Equal(t, 100, len(buf))
		assert.Equal(t, DefaultSmallSize, cap(buf))
	})

	t.Run("AllocatesMediumBuffer", func(t *testing.T) {
		buf := Get(1024)
		defer Put(buf)

		assert.Equal(t, 1024, len(buf))
		assert.Equal(t, DefaultMediumSize, cap(buf))
	})

	t.Run("AllocatesLargeBuffer", func(t *testing.T) {
		buf := Get(10 * 1024)
		defer Put(buf)

		assert.Equal(t, 10*1024, len(buf))
		assert.Equal(t, DefaultLargeSize, cap(buf))
	})

	t.Run("AllocatesOversizedBuffer", func(t *testing.T) {
		buf := Get(1024 * 1024)
		defer Put(buf)

		assert.Equal(t, 1024*1024, len(buf))
		assert.Equal(t, len(buf), cap(buf))
	})

	t.Run("AllocatesZeroSizeBuffer", func(t *testing.T) {
		buf := Get(0)
		defer Put(buf)

		assert.NotNil(t, buf)
		assert.Equal(t, 0, len(buf))
		assert.Equal(t, DefaultSmallSize, cap(buf))
	})
}

// ============================================================================
// Size Class Boundary Tests
// ============================================================================

func TestSizeClassBoundaries(t *testing.T) {
	t.Run("ExactSmallSize", func(t *testing.T) {
		buf := Get(DefaultSmallSize)
		defer Put(buf)
		assert.Equal(t, DefaultSmallSize, cap(buf))
	})

	t.Run("SmallSizePlusOne", func(t *testing.T) {
		buf := Get(DefaultSmallSize + 1)
		defer Put(buf)
		assert.Equal(t, DefaultMediumSize, cap(buf))
	})

	t.Run("ExactLargeSize", func(t *testing.T) {
		buf := Get(DefaultLargeSize)
		defer Put(buf)
		assert.Equal(t, DefaultLargeSize, cap(buf))
	})
}

// ============================================================================
// Custom Pool Tests
// ============================================================================

func TestNewPool(t *testing.T) {
	t.Run("NilConfigUsesDefaults", func(t *testing.T) {
		p := NewPool(nil)
		buf := p.Get(10)
		defer p.Put(buf)
		assert.Equal(t, DefaultSmallSize, cap(buf))
	})

	t.Run("CustomSizes", func(t *testing.T) {
		p := NewPool(&Config{SmallSize: 16, MediumSize: 32, LargeSize: 64})

		buf := p.Get(10)
		assert.Equal(t, 16, cap(buf))
		p.Put(buf)

		buf = p.Get(20)
		assert.Equal(t, 32, cap(buf))
		p.Put(buf)

		buf = p.Get(50)
		assert.Equal(t, 64, cap(buf))
		p.Put(buf)
	})

	t.Run("ZeroConfigValuesFallBack", func(t *testing.T) {
		p := NewPool(&Config{})
		buf := p.Get(10)
		defer p.Put(buf)
		assert.Equal(t, DefaultSmallSize, cap(buf))
	})
}

// ============================================================================
// Put Safety Tests
// ============================================================================

func TestPut(t *testing.T) {
	t.Run("NilBufferIsIgnored", func(t *testing.T) {
		require.NotPanics(t, func() { Put(nil) })
	})

	t.Run("ForeignCapacityIsIgnored", func(t *testing.T) {
		// A buffer whose capacity matches no class goes to the GC.
		require.NotPanics(t, func() { Put(make([]byte, 33)) })
	})

	t.Run("OversizedBufferIsIgnored", func(t *testing.T) {
		buf := Get(1024 * 1024)
		require.NotPanics(t, func() { Put(buf) })
	})
}

// ============================================================================
// Concurrency Tests
// ============================================================================

func TestConcurrentGetPut(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				size := (n*37+j)%2048 + 1
				buf := Get(size)
				assert.Equal(t, size, len(buf))
				for k := range buf {
					buf[k] = byte(n)
				}
				Put(buf)
			}
		}(i)
	}
	wg.Wait()
}
