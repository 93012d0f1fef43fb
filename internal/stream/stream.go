// Package stream provides the shared byte-stream handles the runtime
// hands out for cin/cout, files and TCP connections. A handle is owned
// by arbitrarily many variables at once; every read and write holds the
// handle's own lock, and equality between handles is identity equality,
// never content comparison.
package stream

import (
	"bufio"
	"io"
	"sync"

	"github.com/google/uuid"
)

// In is a shared readable stream handle.
type In struct {
	id uuid.UUID

	mu sync.Mutex
	r  io.Reader
	c  io.Closer
}

// NewIn wraps r in a shared handle. If r also implements io.Closer the
// handle closes it on Close.
func NewIn(r io.Reader) *In {
	s := &In{id: uuid.New(), r: r}
	if c, ok := r.(io.Closer); ok {
		s.c = c
	}
	return s
}

// ID is the handle's identity, used for display and task reports.
func (s *In) ID() uuid.UUID { return s.id }

// ReadExact blocks until exactly n bytes have been read. A stream that
// ends early reports the underlying error.
func (s *In) ReadExact(n int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadAll blocks until the stream is exhausted.
func (s *In) ReadAll() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.ReadAll(s.r)
}

// Close releases the underlying resource, if it is closable.
func (s *In) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}

// Out is a shared writable stream handle. Writes go through a buffer
// when the handle was opened buffered; Flush drains it.
type Out struct {
	id uuid.UUID

	mu sync.Mutex
	w  io.Writer
	bw *bufio.Writer
	c  io.Closer
}

// NewOut wraps w in a shared handle.
func NewOut(w io.Writer) *Out {
	s := &Out{id: uuid.New(), w: w}
	if c, ok := w.(io.Closer); ok {
		s.c = c
	}
	return s
}

// NewBufferedOut wraps w in a shared handle that buffers writes.
// Callers must Flush before the handle is dropped.
func NewBufferedOut(w io.Writer) *Out {
	s := NewOut(w)
	s.bw = bufio.NewWriter(w)
	s.w = s.bw
	return s
}

// ID is the handle's identity.
func (s *Out) ID() uuid.UUID { return s.id }

// Write writes p fully to the stream.
func (s *Out) Write(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(p) > 0 {
		n, err := s.w.Write(p)
		if err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// Flush drains the write buffer, if any.
func (s *Out) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bw == nil {
		return nil
	}
	return s.bw.Flush()
}

// Close flushes and releases the underlying resource.
func (s *Out) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bw != nil {
		if err := s.bw.Flush(); err != nil {
			return err
		}
	}
	if s.c == nil {
		return nil
	}
	return s.c.Close()
}
