package kernel

import (
	"runtime"
	"sync/atomic"
)

const (
	slotIndexMask = 0x3
	slotFresh     = 0x4
)

// Slot hands the latest value of T from one writer goroutine to one reader
// goroutine. A write replaces any unread value; the reader may skip values but
// never sees an older value than its previous read.
//
// Slot is a triple buffer. The writer owns one buffer, the reader owns one,
// and the third sits in the middle. Ownership moves only through an atomic
// swap of the middle index, so a buffer is never written while the reader can
// see it and reads cannot tear.
type Slot[T any] struct {
	_    [0]func() // prevent accidental copying.
	bufs [3]T

	// middle holds the index of the middle buffer and the fresh bit.
	middle atomic.Uint32
	seq    atomic.Uint32

	back  uint32 // writer side
	front uint32 // reader side
	have  bool   // reader side: front holds a written value
}

// NewSlot returns an empty slot.
func NewSlot[T any]() *Slot[T] {
	s := &Slot[T]{back: 0, front: 2}
	s.middle.Store(1)
	return s
}

// Write publishes a copy of *v. Only one goroutine may write.
func (s *Slot[T]) Write(v *T) {
	s.bufs[s.back] = *v
	old := s.middle.Swap(s.back | slotFresh)
	s.back = old & slotIndexMask
	s.seq.Add(1)
}

// TryRead returns the newest value if one was written since the previous read.
// Only one goroutine may read.
func (s *Slot[T]) TryRead() (T, bool) {
	if s.middle.Load()&slotFresh == 0 {
		var zero T
		return zero, false
	}
	old := s.middle.Swap(s.front)
	s.front = old & slotIndexMask
	s.have = true
	return s.bufs[s.front], true
}

// Read returns the newest value, blocking until the first write has happened.
// Without a new write it returns the value of the previous read again.
func (s *Slot[T]) Read() T {
	for {
		if v, ok := s.TryRead(); ok {
			return v
		}
		if s.have {
			return s.bufs[s.front]
		}
		runtime.Gosched()
	}
}

// Seq returns the number of writes so far.
func (s *Slot[T]) Seq() uint32 {
	return s.seq.Load()
}
