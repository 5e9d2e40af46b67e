package pipeline

import "sync/atomic"

// Sequence generates the numbers used to name windows. It starts at 1.
// The zero value is ready to use and safe for concurrent use.
type Sequence struct {
	used atomic.Int64
}

// DefaultSequence is shared by the windows created without WithSequence.
var DefaultSequence = &Sequence{}

// Current returns the number the next call to Next will return.
func (s *Sequence) Current() int {
	return int(s.used.Load()) + 1
}

// Next returns the current number and moves to the next one.
func (s *Sequence) Next() int {
	return int(s.used.Add(1))
}

// Reset restarts the sequence at 1.
func (s *Sequence) Reset() {
	s.used.Store(0)
}

func (s *Sequence) Increment() {
	s.used.Add(1)
}

// Decrement moves the sequence back by one. It never goes below 1.
func (s *Sequence) Decrement() {
	for {
		n := s.used.Load()
		if n == 0 || s.used.CompareAndSwap(n, n-1) {
			return
		}
	}
}

// ResetCounter resets DefaultSequence.
func ResetCounter() { DefaultSequence.Reset() }

// IncrementCounter increments DefaultSequence.
func IncrementCounter() { DefaultSequence.Increment() }

// DecrementCounter decrements DefaultSequence.
func DecrementCounter() { DefaultSequence.Decrement() }
