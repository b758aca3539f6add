package peakmon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shoenig/test/must"
)

func TestSeqFile_Monotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peak_seq")

	s, err := OpenSeqFile(path)
	must.NoError(t, err)

	var last uint64
	for i := 0; i < 5; i++ {
		seq, err := s.Next()
		must.NoError(t, err)
		must.Greater(t, last, seq)
		last = seq
	}

	// Reopening continues past everything handed out before.
	s2, err := OpenSeqFile(path)
	must.NoError(t, err)
	seq, err := s2.Next()
	must.NoError(t, err)
	must.Greater(t, last, seq)
}

func TestSeqFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peak_seq")
	must.NoError(t, os.WriteFile(path, []byte("not a number\n"), 0o600))

	_, err := OpenSeqFile(path)
	must.Error(t, err)
}

func TestSeqFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "peak_seq")
	must.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	s, err := OpenSeqFile(path)
	must.NoError(t, err)
	seq, err := s.Next()
	must.NoError(t, err)
	must.Eq(t, uint64(1), seq)
}
