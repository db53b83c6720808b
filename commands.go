// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/elliotnunn/huff/internal/decompressioncache"
	"github.com/elliotnunn/huff/internal/fileid"
	"github.com/elliotnunn/huff/internal/huffman"
	"github.com/elliotnunn/huff/internal/statdb"
)

func compressCmd(inName, outName string) error {
	t := time.Now()
	in, err := os.Open(inName)
	if err != nil {
		return err
	}
	defer in.Close()

	var st huffman.Stats
	err = createOutput(outName, func(w io.Writer) error {
		st, err = huffman.Compress(in, w)
		return err
	})
	if err != nil {
		return err
	}
	slog.Info("compressDone", "in", st.InputBytes, "out", st.OutputBytes,
		"ratio", fmt.Sprintf("%.3f", st.Ratio()), "duration", time.Since(t).String())

	if id, err := fileid.Get(outName); err == nil {
		remember(id, st)
	}
	return nil
}

func decompressCmd(inName, outName string) error {
	t := time.Now()
	in, err := openInput(inName)
	if err != nil {
		return err
	}
	defer in.Close()

	var n int64
	err = createOutput(outName, func(w io.Writer) error {
		n, err = huffman.Decompress(in.stream, w)
		return err
	})
	if err != nil {
		return fmt.Errorf("%s: %w", inName, err)
	}
	slog.Info("decompressDone", "out", n, "container", in.container, "duration", time.Since(t).String())
	return nil
}

func infoCmd(name string, stdout io.Writer) error {
	in, err := openInput(name)
	if err != nil {
		return err
	}
	defer in.Close()

	st, ok := recall(in.id)
	if !ok {
		st, err = huffman.Inspect(in.stream)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		remember(in.id, st)
	}

	tw := tabwriter.NewWriter(stdout, 0, 8, 1, ' ', 0)
	if in.container != "" {
		fmt.Fprintf(tw, "container\t%s\n", in.container)
	}
	fmt.Fprintf(tw, "input bytes\t%d\n", st.InputBytes)
	fmt.Fprintf(tw, "distinct symbols\t%d\n", st.DistinctSymbols)
	fmt.Fprintf(tw, "header bits\t%d\n", st.HeaderBits)
	fmt.Fprintf(tw, "body bits\t%d\n", st.BodyBits)
	fmt.Fprintf(tw, "output bytes\t%d\n", st.OutputBytes)
	fmt.Fprintf(tw, "ratio\t%.3f\n", st.Ratio())
	return tw.Flush()
}

func catCmd(name string, args []string, stdout io.Writer) error {
	var offset, length int64 = 0, -1
	var err error
	if len(args) > 0 {
		if offset, err = strconv.ParseInt(args[0], 0, 64); err != nil {
			return errUsage
		}
	}
	if len(args) > 1 {
		if length, err = strconv.ParseInt(args[1], 0, 64); err != nil || length < 0 {
			return errUsage
		}
	}

	in, err := openInput(name)
	if err != nil {
		return err
	}
	defer in.Close()

	ra, err := in.readerAt()
	if err != nil {
		return err
	}
	stepper, err := huffman.NewStepper(ra)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	decoded := decompressioncache.New(stepper, uint64(in.id), name)

	if offset < 0 {
		size := int64(-1)
		if st, ok := recall(in.id); ok {
			size = st.InputBytes
		} else if size, err = decoded.Size(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		offset = max(0, size+offset)
	}
	if length < 0 {
		length = math.MaxInt64 - offset
	}

	w := bufio.NewWriter(stdout)
	if _, err := io.Copy(w, io.NewSectionReader(decoded, offset, length)); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return w.Flush()
}

// createOutput removes the file again if fill fails.
func createOutput(name string, fill func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriterSize(f, 64*1024)
	err = fill(w)
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(name)
	}
	return err
}

func remember(id fileid.ID, st huffman.Stats) {
	db := openStatDB()
	if db == nil {
		return
	}
	defer db.Close()
	if err := db.Put(id, st); err != nil {
		slog.Warn("statDBPut", "id", id, "err", err)
	}
}

func recall(id fileid.ID) (huffman.Stats, bool) {
	db := openStatDB()
	if db == nil {
		return huffman.Stats{}, false
	}
	defer db.Close()
	st, ok, err := db.Get(id)
	if err != nil {
		slog.Warn("statDBGet", "id", id, "err", err)
	}
	return st, ok
}

func openStatDB() *statdb.DB {
	dir := statDir()
	if dir == "" {
		return nil
	}
	db, err := statdb.Open(dir)
	if err != nil {
		slog.Warn("statDBOpen", "dir", dir, "err", err)
		return nil
	}
	return db
}
