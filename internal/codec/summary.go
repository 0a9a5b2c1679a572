package codec

import (
	"strings"
	"sync"
)

// Summary receives one-line descriptions of decoded operations and
// summarized fields, for example "invoke read" or "messageID=3".
type Summary interface {
	Append(entry string)
}

// SummaryBuffer collects summary entries in memory.
type SummaryBuffer struct {
	mu      sync.Mutex
	entries []string
}

// Append implements Summary.
func (s *SummaryBuffer) Append(entry string) {
	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
}

// Entries returns a copy of the collected entries.
func (s *SummaryBuffer) Entries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	copy(out, s.entries)
	return out
}

// String joins the entries with ", ".
func (s *SummaryBuffer) String() string {
	return strings.Join(s.Entries(), ", ")
}
