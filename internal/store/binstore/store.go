package binstore

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/clido/internal/logging"
	"github.com/Makepad-fr/clido/internal/model"
)

// ErrWouldShrink is returned by RewriteAll when the new record set encodes
// to fewer bytes than the file already holds. RewriteAll never truncates, so
// writing it would leave stale bytes after the last record.
var ErrWouldShrink = errors.New("rewrite would shrink the store")

// Store reads and writes records on one open handle.
// It is not safe for concurrent use.
type Store struct {
	rws    io.ReadWriteSeeker
	logger *log.Logger
}

// New returns a Store over rws. A nil logger discards store diagnostics.
func New(rws io.ReadWriteSeeker, logger *log.Logger) *Store {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{rws: rws, logger: logger}
}

// LoadAll decodes every record from the start of the handle.
// An empty handle yields an empty slice and no error. A malformed record
// anywhere, including a torn tail after valid records, fails the whole load.
func (s *Store) LoadAll() ([]model.Item, error) {
	if _, err := s.rws.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek start: %w", err)
	}

	br := bufio.NewReader(s.rws)
	items := []model.Item{}
	var offset int64
	for {
		it, err := DecodeItem(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d at offset %d: %w", len(items), offset, err)
		}
		items = append(items, it)
		offset += EncodedSize(it)
	}

	s.logger.Debug("loaded store", "records", len(items), "bytes", offset)
	return items, nil
}

// AppendOne writes it after the last record. The store doesn't need to be
// loaded first.
func (s *Store) AppendOne(it model.Item) error {
	end, err := s.rws.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek end: %w", err)
	}
	if err := EncodeItem(s.rws, it); err != nil {
		return fmt.Errorf("append at offset %d: %w", end, err)
	}
	s.logger.Debug("appended record", "offset", end, "bytes", EncodedSize(it))
	return nil
}

// RewriteAll writes items over the handle from offset 0. The file is not
// truncated afterwards, so the new contents must be at least as long as the
// old ones; flipping done flags and adding records both satisfy that.
// A failure part way through leaves a mix of old and new bytes.
func (s *Store) RewriteAll(items []model.Item) error {
	var size int64
	for _, it := range items {
		size += EncodedSize(it)
	}

	current, err := s.rws.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seek end: %w", err)
	}
	if size < current {
		return fmt.Errorf("%w: %d bytes on disk, %d to write", ErrWouldShrink, current, size)
	}

	if _, err := s.rws.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek start: %w", err)
	}
	bw := bufio.NewWriter(s.rws)
	for i, it := range items {
		if err := EncodeItem(bw, it); err != nil {
			return fmt.Errorf("rewrite record %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("rewrite flush: %w", err)
	}

	s.logger.Debug("rewrote store", "records", len(items), "bytes", size)
	return nil
}

// Sync commits written records to stable storage when the handle supports it.
func (s *Store) Sync() error {
	syncer, ok := s.rws.(interface{ Sync() error })
	if !ok {
		return nil
	}
	return syncer.Sync()
}

// MarkDone flips the requested items to done and returns the indices it
// changed, in request order. Out-of-range indices are ignored without
// comment; items already done are left alone and not reported.
func MarkDone(items []model.Item, indices []int) []int {
	var marked []int
	for _, idx := range indices {
		if idx < 0 || idx >= len(items) {
			continue
		}
		if items[idx].Done {
			continue
		}
		items[idx].Done = true
		marked = append(marked, idx)
	}
	return marked
}
