// Copyright (c) Elliot Nunn
// Licensed under the MIT license

// Package reader2readerat gives random access to a stream that can only be
// read from the beginning, such as the output of a decompressor.
package reader2readerat

import (
	"io"
	"sync"

	"github.com/elliotnunn/huff/internal/decompressioncache"
)

const blocksize = 4096

type ReaderAt struct {
	*decompressioncache.ReaderAt
	s *stream
}

// New calls open again whenever it needs to go backwards.
// The id must distinguish this stream from every other in the process.
// If the io.Reader is an io.ReadCloser then it will be closed when I am closed.
func New(id uint64, debugName string, open func() (io.Reader, error)) *ReaderAt {
	s := &stream{open: open}
	return &ReaderAt{
		ReaderAt: decompressioncache.New(s.stepAt(0), id, debugName),
		s:        s,
	}
}

func (r *ReaderAt) Close() error {
	r.s.l.Lock()
	defer r.s.l.Unlock()
	r.s.close()
	return nil
}

type stream struct {
	open  func() (io.Reader, error)
	l     sync.Mutex
	r     io.Reader
	seek  int64
}

func (s *stream) stepAt(off int64) decompressioncache.Stepper {
	return func() (decompressioncache.Stepper, []byte, error) {
		block, err := s.readBlock(off)
		if err != nil {
			return nil, block, err
		}
		return s.stepAt(off + int64(len(block))), block, nil
	}
}

func (s *stream) readBlock(off int64) ([]byte, error) {
	s.l.Lock()
	defer s.l.Unlock()

	if s.r == nil || s.seek > off {
		s.close()
		r, err := s.open()
		if err != nil {
			return nil, err
		}
		s.r, s.seek = r, 0
	}

	if s.seek < off {
		n, err := io.CopyN(io.Discard, s.r, off-s.seek)
		s.seek += n
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF // shorter than last time
		} else if err != nil {
			return nil, err
		}
	}

	block := make([]byte, blocksize)
	n, err := io.ReadFull(s.r, block)
	s.seek += int64(n)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}
	return block[:n], err
}

func (s *stream) close() {
	if closer, ok := s.r.(io.Closer); ok {
		closer.Close()
	}
	s.r = nil
}
