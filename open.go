package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	bufra "github.com/avvmoto/buf-readerat"
	"github.com/elliotnunn/huff/internal/fileid"
	"github.com/elliotnunn/huff/internal/reader2readerat"
)

// input is a huff stream opened for reading, possibly from inside a container.
type input struct {
	name      string
	id        fileid.ID
	container string // "" for a bare stream
	stream    io.Reader
	f         *os.File // nil for stdin
	mem       []byte   // whole stdin, kept for rereading
}

func openInput(name string) (*input, error) {
	in := &input{name: name}
	var raw io.Reader
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		in.mem = data
		in.id, _ = fileid.Content(bytes.NewReader(data))
		raw = bytes.NewReader(data)
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		in.f = f
		raw = f
		in.id, err = fileid.Get(name)
		if err != nil {
			f.Close()
			return nil, err
		}
	}

	var err error
	in.stream, in.container, err = probe(raw)
	if err != nil {
		in.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return in, nil
}

// readerAt gives random access to the huff stream, buffering the file when
// it is bare and decompressing the container again on demand otherwise.
func (in *input) readerAt() (io.ReaderAt, error) {
	switch {
	case in.container == "" && in.f != nil:
		s, err := in.f.Stat()
		if err != nil {
			return nil, err
		}
		withBuffer := bufra.NewBufReaderAt(in.f, 4096)
		return io.NewSectionReader(withBuffer, 0, s.Size()), nil
	case in.container == "" && in.mem != nil:
		return bytes.NewReader(in.mem), nil
	default:
		return reader2readerat.New(uint64(in.id.Derive(in.container)), in.name, in.reopen), nil
	}
}

// reopen finds the stream again from the start of the container.
func (in *input) reopen() (io.Reader, error) {
	var raw io.Reader
	if in.f != nil {
		raw = io.NewSectionReader(in.f, 0, math.MaxInt64)
	} else {
		raw = bytes.NewReader(in.mem)
	}
	stream, _, err := probe(raw)
	return stream, err
}

func (in *input) Close() error {
	if in.f != nil {
		return in.f.Close()
	}
	return nil
}
