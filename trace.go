// trace.go: access trace ingestion and synthetic workloads
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

import (
	"bufio"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// KeySource yields the key stream of one workload. Next returns io.EOF
// when the stream is exhausted.
type KeySource interface {
	Next() (uint64, error)
}

// Trace reads decimal keys, one per line, from a trace file. Files ending
// in ".lz4" or ".sz" are decompressed transparently. Blank lines and lines
// starting with '#' are skipped; on lines with several whitespace-separated
// fields only the first is used, so timestamped traces work unmodified.
type Trace struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	line    int
}

// OpenTrace opens the trace at path.
func OpenTrace(path string) (*Trace, error) {
	f, err := os.Open(path) // #nosec G304 - the trace path is operator input
	if err != nil {
		return nil, NewErrTraceOpen(path, err)
	}

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".lz4":
		r = lz4.NewReader(f)
	case ".sz":
		r = snappy.NewReader(f)
	}

	return &Trace{
		path:    path,
		file:    f,
		scanner: bufio.NewScanner(r),
	}, nil
}

// Next returns the next key, or io.EOF at the end of the trace.
func (t *Trace) Next() (uint64, error) {
	for t.scanner.Scan() {
		t.line++
		text := strings.TrimSpace(t.scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if i := strings.IndexAny(text, " \t,"); i >= 0 {
			text = text[:i]
		}
		key, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return 0, NewErrTraceParse(t.path, t.line, err)
		}
		return key, nil
	}
	if err := t.scanner.Err(); err != nil {
		return 0, NewErrTraceParse(t.path, t.line, err)
	}
	return 0, io.EOF
}

// Close releases the underlying file.
func (t *Trace) Close() error {
	return t.file.Close()
}

// ZipfSource generates a bounded synthetic workload with a Zipf-distributed
// keyspace, the usual stand-in for real cache traces.
type ZipfSource struct {
	zipf      *rand.Zipf
	remaining int
}

// NewZipfSource yields count keys drawn from [0, keys) with skew s > 1 and
// offset v >= 1, deterministically for a given seed.
func NewZipfSource(seed int64, s, v float64, keys uint64, count int) *ZipfSource {
	r := rand.New(rand.NewSource(seed)) // #nosec G404 - reproducible workloads need a seeded PRNG
	return &ZipfSource{
		zipf:      rand.NewZipf(r, s, v, keys-1),
		remaining: count,
	}
}

// Next returns the next synthetic key, or io.EOF once count keys were drawn.
func (z *ZipfSource) Next() (uint64, error) {
	if z.remaining <= 0 {
		return 0, io.EOF
	}
	z.remaining--
	return z.zipf.Uint64(), nil
}

// SliceSource replays an in-memory key sequence. It lets one loaded trace
// drive several policies with identical input.
type SliceSource struct {
	keys []uint64
	next int
}

// NewSliceSource wraps keys without copying.
func NewSliceSource(keys []uint64) *SliceSource {
	return &SliceSource{keys: keys}
}

// Next returns the next key, or io.EOF at the end of the slice.
func (s *SliceSource) Next() (uint64, error) {
	if s.next >= len(s.keys) {
		return 0, io.EOF
	}
	key := s.keys[s.next]
	s.next++
	return key, nil
}

// ReadAll drains the source into memory.
func ReadAll(src KeySource) ([]uint64, error) {
	var keys []uint64
	for {
		key, err := src.Next()
		if err == io.EOF {
			return keys, nil
		}
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
}

// Replay feeds every key in the source to the policy and runs its final
// consistency check.
func Replay(p Policy, src KeySource) error {
	for {
		key, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		p.Record(key)
	}
	return p.Finished()
}
