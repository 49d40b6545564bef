package fibonacci

import (
	"context"
	"errors"

	"github.com/agbru/bigfib/internal/bignum"
	apperrors "github.com/agbru/bigfib/internal/errors"
)

// ErrSequenceClosed is returned by a Sequence after Close.
var ErrSequenceClosed = errors.New("fibonacci: sequence closed")

// Sequence reads consecutive Fibonacci terms by offset. It keeps the two
// registers of the recurrence between calls, so reading offsets 0..N in order
// costs the same as computing F(N+1) once.
//
// Example usage:
//
//	seq, err := fibonacci.NewSequence()
//	if err != nil {
//	    return err
//	}
//	defer seq.Close()
//	for i := 0; i <= 100; i++ {
//	    n, f, err := seq.Next()
//	    if err != nil {
//	        return err
//	    }
//	    // Use n and f
//	}
//
// A Sequence is not safe for concurrent use.
type Sequence struct {
	cur, next *bignum.BigNum // F(index), F(index+1)
	index     uint64
	closed    bool
}

// NewSequence returns a Sequence positioned at offset 0.
//
// Returns:
//   - *Sequence: The new sequence.
//   - error: ErrAllocation if the registers could not be allocated.
func NewSequence() (*Sequence, error) {
	s := &Sequence{}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sequence) reset() error {
	cur, err := bignum.New(1)
	if err != nil {
		return err
	}
	next, err := bignum.FromUint64(1)
	if err != nil {
		_ = cur.Free()
		return err
	}
	s.release()
	s.cur, s.next, s.index = cur, next, 0
	return nil
}

func (s *Sequence) release() {
	if s.cur != nil {
		_ = s.cur.Free()
	}
	if s.next != nil {
		_ = s.next.Free()
	}
	s.cur, s.next = nil, nil
}

// advance moves the registers forward by one offset.
func (s *Sequence) advance() error {
	if err := s.cur.Add(s.cur, s.next); err != nil {
		return apperrors.CalculationError{N: s.index + 2, Cause: err}
	}
	s.cur, s.next = s.next, s.cur
	s.index++
	return nil
}

// Index returns the offset that the next call to Next will return.
func (s *Sequence) Index() uint64 {
	return s.index
}

// Next returns the term at the current offset and moves to the following one.
// The returned BigNum is a copy owned by the caller.
//
// Returns:
//   - uint64: The offset of the returned term.
//   - *bignum.BigNum: F(offset).
//   - error: ErrSequenceClosed, or an allocation failure.
func (s *Sequence) Next() (uint64, *bignum.BigNum, error) {
	if s.closed {
		return 0, nil, ErrSequenceClosed
	}
	n := s.index
	out, err := s.cur.Clone()
	if err != nil {
		return 0, nil, apperrors.CalculationError{N: n, Cause: err}
	}
	if err := s.advance(); err != nil {
		_ = out.Free()
		return 0, nil, err
	}
	return n, out, nil
}

// Seek positions the sequence so that the next call to Next returns F(n).
// Seeking backwards restarts from offset 0. The context is checked
// periodically while the registers move forward.
//
// Parameters:
//   - ctx: The context for managing cancellation.
//   - n: The target offset.
//
// Returns:
//   - error: ErrSequenceClosed, a context error, or an allocation failure.
func (s *Sequence) Seek(ctx context.Context, n uint64) error {
	if s.closed {
		return ErrSequenceClosed
	}
	if n < s.index {
		if err := s.reset(); err != nil {
			return err
		}
	}
	for s.index < n {
		if s.index%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := s.advance(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the registers. Further calls return ErrSequenceClosed.
func (s *Sequence) Close() error {
	if s.closed {
		return ErrSequenceClosed
	}
	s.release()
	s.closed = true
	return nil
}
