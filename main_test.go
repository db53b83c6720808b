// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package main

import (
	"bytes"
	"compress/gzip"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elliotnunn/huff/internal/huffman"
	"github.com/klauspost/compress/zstd"
)

// the compressed form of an empty file, inside an xz container
const emptyXZ = "fd377a585a0000016922de36020021010c0000008f98419c010006face82016010000000cb980f0700011b0712ebd4179042990d010000000001595a"

func testText(n int) []byte {
	rng := rand.New(rand.NewPCG(20121993, 1))
	words := strings.Fields("the quick brown fox jumps over a lazy dog while seven wizards box")
	var buf bytes.Buffer
	for buf.Len() < n {
		buf.WriteString(words[rng.IntN(len(words))])
		buf.WriteByte(" \n"[rng.IntN(2)])
	}
	return buf.Bytes()[:n]
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCompressDecompress(t *testing.T) {
	t.Setenv("HUFFCACHE", "off")
	for _, n := range []int{0, 1, 5000, 100000} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			data := testText(n)
			plain := writeTemp(t, "plain", data)
			packed := plain + ".huff"
			unpacked := plain + ".out"

			if err := run([]string{"compress", plain, packed}, nil); err != nil {
				t.Fatal(err)
			}
			if err := run([]string{"decompress", packed, unpacked}, nil); err != nil {
				t.Fatal(err)
			}
			got, _ := os.ReadFile(unpacked)
			if !bytes.Equal(got, data) {
				t.Errorf("round trip of %d bytes gave %d different bytes", len(data), len(got))
			}
		})
	}
}

func TestCompressFailureRemovesOutput(t *testing.T) {
	t.Setenv("HUFFCACHE", "off")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.huff")
	if err := run([]string{"compress", dir, out}, nil); err == nil {
		t.Fatal("expected compressing a directory to fail")
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected output to be removed, got %v", err)
	}
}

func TestDecompressGzip(t *testing.T) {
	t.Setenv("HUFFCACHE", "off")
	data := testText(3000)
	packed, err := huffman.CompressBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write(packed)
	zw.Close()

	in := writeTemp(t, "x.huff.gz", gz.Bytes())
	out := in + ".out"
	if err := run([]string{"decompress", in, out}, nil); err != nil {
		t.Fatal(err)
	}
	got, _ := os.ReadFile(out)
	if !bytes.Equal(got, data) {
		t.Error("gzip-wrapped stream did not round trip")
	}
}

func TestDecompressXZ(t *testing.T) {
	t.Setenv("HUFFCACHE", "off")
	raw, _ := hex.DecodeString(emptyXZ)
	in := writeTemp(t, "x.huff.xz", raw)
	out := in + ".out"
	if err := run([]string{"decompress", in, out}, nil); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(out); len(got) != 0 {
		t.Errorf("expected empty output got %q", got)
	}
}

func TestDecompressZstd(t *testing.T) {
	t.Setenv("HUFFCACHE", "off")
	data := testText(7000)
	packed, _ := huffman.CompressBytes(data)
	var zs bytes.Buffer
	zw, err := zstd.NewWriter(&zs)
	if err != nil {
		t.Fatal(err)
	}
	zw.Write(packed)
	zw.Close()

	in := writeTemp(t, "x.huff.zst", zs.Bytes())
	out := in + ".out"
	if err := run([]string{"decompress", in, out}, nil); err != nil {
		t.Fatal(err)
	}
	if got, _ := os.ReadFile(out); !bytes.Equal(got, data) {
		t.Error("zstd-wrapped stream did not round trip")
	}

	var tail bytes.Buffer
	if err := run([]string{"cat", in, "-50"}, &tail); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(tail.Bytes(), data[len(data)-50:]) {
		t.Errorf("expected %q got %q", data[len(data)-50:], tail.Bytes())
	}
}

func TestProbe(t *testing.T) {
	packed, _ := huffman.CompressBytes([]byte("hello"))
	var once, twice bytes.Buffer
	zw := gzip.NewWriter(&once)
	zw.Write(packed)
	zw.Close()
	zw = gzip.NewWriter(&twice)
	zw.Write(once.Bytes())
	zw.Close()

	cases := []struct {
		data      []byte
		container string
		ok        bool
	}{
		{packed, "", true},
		{once.Bytes(), "gzip", true},
		{twice.Bytes(), "", false},
		{nil, "", false},
		{[]byte{0xfa, 0xce}, "", false},
		{[]byte("BZh9 is not enough"), "", false},
		{[]byte("plain text"), "", false},
	}
	for i, c := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			stream, container, err := probe(bytes.NewReader(c.data))
			if !c.ok {
				if err == nil {
					t.Errorf("expected an error, got container %q", container)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if container != c.container {
				t.Errorf("expected container %q got %q", c.container, container)
			}
			var out bytes.Buffer
			if _, err := huffman.Decompress(stream, &out); err != nil || out.String() != "hello" {
				t.Errorf("expected hello got %q, %v", out.String(), err)
			}
		})
	}

	if _, _, err := probe(strings.NewReader("plain text")); !errors.Is(err, huffman.ErrFormat) {
		t.Errorf("expected ErrFormat got %v", err)
	}
}

func TestInfo(t *testing.T) {
	t.Setenv("HUFFCACHE", t.TempDir())
	plain := writeTemp(t, "plain", bytes.Repeat([]byte{'A'}, 1000))
	packed := plain + ".huff"
	if err := run([]string{"compress", plain, packed}, nil); err != nil {
		t.Fatal(err)
	}

	var first, second bytes.Buffer
	if err := run([]string{"info", packed}, &first); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"input bytes      1000\n", "distinct symbols 1\n", "body bits        1001\n"} {
		if !strings.Contains(first.String(), want) {
			t.Errorf("expected %q in:\n%s", want, first.String())
		}
	}

	// without the database the stream must be decoded to the same answer
	t.Setenv("HUFFCACHE", "off")
	if err := run([]string{"info", packed}, &second); err != nil {
		t.Fatal(err)
	}
	if first.String() != second.String() {
		t.Errorf("recorded and decoded info differ:\n%s\n%s", first.String(), second.String())
	}
}

func TestCat(t *testing.T) {
	t.Setenv("HUFFCACHE", t.TempDir())
	data := testText(20000)
	plain := writeTemp(t, "plain", data)
	packed := plain + ".huff"
	if err := run([]string{"compress", plain, packed}, nil); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		args   []string
		expect []byte
	}{
		{nil, data},
		{[]string{"0", "10"}, data[:10]},
		{[]string{"4095", "3"}, data[4095:4098]},
		{[]string{"12345"}, data[12345:]},
		{[]string{"-100"}, data[len(data)-100:]},
		{[]string{"-100", "5"}, data[len(data)-100:][:5]},
		{[]string{"-99999"}, data},
		{[]string{"30000"}, nil},
	}
	for _, c := range cases {
		t.Run(strings.Join(c.args, ","), func(t *testing.T) {
			var out bytes.Buffer
			if err := run(append([]string{"cat", packed}, c.args...), &out); err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(out.Bytes(), c.expect) {
				t.Errorf("expected %d bytes got %d", len(c.expect), out.Len())
			}
		})
	}
}

func TestCatWithoutStats(t *testing.T) {
	t.Setenv("HUFFCACHE", "off")
	data := testText(9000)
	packed, _ := huffman.CompressBytes(data)
	name := writeTemp(t, "x.huff", packed)

	var out bytes.Buffer
	if err := run([]string{"cat", name, "-10"}, &out); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), data[len(data)-10:]) {
		t.Errorf("expected %q got %q", data[len(data)-10:], out.Bytes())
	}
}

func TestCatGzip(t *testing.T) {
	t.Setenv("HUFFCACHE", "off")
	data := testText(30000)
	packed, _ := huffman.CompressBytes(data)
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	zw.Write(packed)
	zw.Close()
	name := writeTemp(t, "x.huff.gz", gz.Bytes())

	for _, c := range [][2]int{{25000, 100}, {10, 20}, {0, 30000}} {
		var out bytes.Buffer
		if err := run([]string{"cat", name, fmt.Sprint(c[0]), fmt.Sprint(c[1])}, &out); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(out.Bytes(), data[c[0]:][:c[1]]) {
			t.Errorf("cat %d %d: expected %d bytes of input, got %d different bytes", c[0], c[1], c[1], out.Len())
		}
	}
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{
		nil,
		{"bogus"},
		{"compress", "a"},
		{"info"},
		{"cat", "f", "x"},
		{"cat", "f", "0", "-1"},
		{"cat", "f", "0", "1", "2"},
	} {
		if err := run(args, nil); !errors.Is(err, errUsage) {
			t.Errorf("%q: expected usage error got %v", args, err)
		}
	}
}
