package id

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Sequence hands out strictly increasing identifiers starting at 1.
// The zero value is ready to use.
type Sequence struct {
	last atomic.Int64
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}

// Peek returns the identifier the next call to Next will return.
func (s *Sequence) Peek() int64 {
	return s.last.Load() + 1
}

// Reset restarts the sequence so the next identifier is 1.
func (s *Sequence) Reset() {
	s.last.Store(0)
}

// Parse converts a path segment into an item identifier.
// Only plain base-10 integers are accepted: "12abc", "1.5", " 3" and ""
// all report ok=false so callers can treat them as never matching.
func Parse(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Format renders an identifier the way Parse accepts it.
func Format(n int64) string {
	return strconv.FormatInt(n, 10)
}

// RequestID generates a UUID v4 for request correlation.
func RequestID() string {
	return uuid.NewString()
}
