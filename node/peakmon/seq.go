package peakmon

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// SeqFile allocates sequence numbers that stay strictly monotonic across node
// restarts. The counter is stored as ASCII digits and fsynced on every
// allocation, so a crash can skip numbers but never reuse one.
type SeqFile struct {
	mu   sync.Mutex
	path string
	next uint64
}

// OpenSeqFile loads the counter at path, creating it at zero when absent.
func OpenSeqFile(path string) (*SeqFile, error) {
	s := &SeqFile{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First boot.
	case err != nil:
		return nil, fmt.Errorf("failed to read sequence file: %w", err)
	default:
		text := strings.TrimSpace(string(raw))
		if text != "" {
			n, err := strconv.ParseUint(text, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("corrupt sequence file %q: %w", path, err)
			}
			s.next = n
		}
	}
	return s, nil
}

// Next returns the next sequence number. The new counter value is durable
// before the number is handed out.
func (s *SeqFile) Next() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.next + 1
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return 0, fmt.Errorf("failed to open sequence file: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d\n", seq); err != nil {
		f.Close()
		return 0, err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to sync sequence file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, err
	}

	s.next = seq
	return seq, nil
}
