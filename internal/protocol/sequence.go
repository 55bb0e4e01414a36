package protocol

import (
	"strconv"
	"sync"
)

// maxSafeID is the largest integer a JSON consumer can represent exactly.
const maxSafeID = 1<<53 - 1

// Sequence issues monotonically increasing message ids, wrapping from
// maxSafeID back to 1. Zero is never issued. A single Sequence is shared by
// every channel in the process, so ids are process-wide, not per document.
type Sequence struct {
	mu   sync.Mutex
	last int64
}

func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last >= maxSafeID {
		s.last = 0
	}
	s.last++
	return strconv.FormatInt(s.last, 10)
}

// DefaultSequence is the process-wide id source.
var DefaultSequence = &Sequence{}
