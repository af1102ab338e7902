package seeder

import "sync/atomic"

// PopulateLock provides non-blocking lock semantics using atomic operations.
// A second populate run is rejected instead of queued behind the first.
type PopulateLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire attempts to acquire the lock without blocking.
// Returns true if the lock was successfully acquired, false otherwise.
func (l *PopulateLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release ends the run. Only Populate, after a successful TryAcquire,
// calls it.
func (l *PopulateLock) Release() {
	l.state.Store(0)
}

// Held reports whether a run currently holds the lock
func (l *PopulateLock) Held() bool {
	return l.state.Load() == 1
}
