package debounce

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleCoalesces(t *testing.T) {
	d := New()
	var runs int32

	for i := 0; i < 10; i++ {
		d.Schedule("chats", 30*time.Millisecond, func() {
			atomic.AddInt32(&runs, 1)
		})
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
	assert.Equal(t, 0, d.Pending())
}

func TestScheduleLastFunctionWins(t *testing.T) {
	d := New()
	var got int32

	d.Schedule("k", 30*time.Millisecond, func() { atomic.StoreInt32(&got, 1) })
	d.Schedule("k", 30*time.Millisecond, func() { atomic.StoreInt32(&got, 2) })

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&got))
}

func TestIndependentKeys(t *testing.T) {
	d := New()
	var runs int32

	d.Schedule("a", 20*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })
	d.Schedule("b", 20*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })
	assert.Equal(t, 2, d.Pending())

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&runs))
}

func TestCancel(t *testing.T) {
	d := New()
	var runs int32

	d.Schedule("k", 20*time.Millisecond, func() { atomic.AddInt32(&runs, 1) })
	d.Cancel("k")

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&runs))
	assert.Equal(t, 0, d.Pending())
}

func TestFlushRunsImmediately(t *testing.T) {
	d := New()
	var runs int32

	d.Schedule("k", time.Hour, func() { atomic.AddInt32(&runs, 1) })
	d.Flush("k")

	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
	assert.Equal(t, 0, d.Pending())

	// Flushing again is a no-op
	d.Flush("k")
	assert.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestFlushAll(t *testing.T) {
	d := New()
	var runs int32

	d.Schedule("a", time.Hour, func() { atomic.AddInt32(&runs, 1) })
	d.Schedule("b", time.Hour, func() { atomic.AddInt32(&runs, 1) })
	d.Schedule("c", time.Hour, func() { atomic.AddInt32(&runs, 1) })

	d.FlushAll()

	assert.Equal(t, int32(3), atomic.LoadInt32(&runs))
	assert.Equal(t, 0, d.Pending())
}
