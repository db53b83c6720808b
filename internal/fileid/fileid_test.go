// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package fileid

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGet(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "a")
	if err := os.WriteFile(name, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := Get(name)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Get(name)
	if a != b {
		t.Errorf("expected a stable ID, got %s then %s", a, b)
	}

	if err := os.WriteFile(name, []byte("hello, world"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	os.Chtimes(name, future, future)
	c, _ := Get(name)
	if c == a {
		t.Errorf("expected the ID to change after rewriting the file, still %s", c)
	}

	if _, err := Get(dir); !errors.Is(err, ErrNotRegular) {
		t.Errorf("expected ErrNotRegular for a directory, got %v", err)
	}
	if _, err := Get(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist got %v", err)
	}
}

func TestContent(t *testing.T) {
	a, _ := Content(strings.NewReader("hello"))
	b, _ := Content(strings.NewReader("hello"))
	c, _ := Content(strings.NewReader("hellp"))
	if a != b || a == c {
		t.Errorf("expected equal content to give equal IDs only: %s %s %s", a, b, c)
	}
}

func TestDerive(t *testing.T) {
	id := ID(0x1234)
	if id.Derive("a") == id || id.Derive("a") == id.Derive("b") || id.Derive("a") != id.Derive("a") {
		t.Error("expected Derive to give distinct stable IDs")
	}
}
