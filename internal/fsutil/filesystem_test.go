package fsutil

import (
	"errors"
	"io/fs"
	"testing"
)

func TestMemoryFileSystemRoundTrip(t *testing.T) {
	m := NewMemoryFileSystem()

	if err := m.WriteFile("forward/inst.dat", []byte("101 0 0 4.2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := m.ReadFile("forward/inst.dat")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "101 0 0 4.2\n" {
		t.Errorf("read back %q", data)
	}

	// returned slice is a copy
	data[0] = 'X'
	again, err := m.ReadFile("forward/inst.dat")
	if err != nil {
		t.Fatal(err)
	}
	if again[0] == 'X' {
		t.Error("ReadFile shares its buffer with the caller")
	}
}

func TestMemoryFileSystemCreate(t *testing.T) {
	m := NewMemoryFileSystem()
	w, err := m.Create("out.dat")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("partial")); err != nil {
		t.Fatal(err)
	}
	if m.Exists("out.dat") {
		t.Error("file visible before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if !m.Exists("out.dat") {
		t.Error("file missing after Close")
	}
}

func TestMemoryFileSystemMissingFile(t *testing.T) {
	m := NewMemoryFileSystem()
	_, err := m.ReadFile("nope.dat")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("got %v, want fs.ErrNotExist", err)
	}
}

func TestMemoryFileSystemMkdirAll(t *testing.T) {
	m := NewMemoryFileSystem()
	if err := m.MkdirAll("a/b/c", 0o755); err != nil {
		t.Fatal(err)
	}
	for _, dir := range []string{"a", "a/b", "a/b/c"} {
		if !m.Exists(dir) {
			t.Errorf("%s does not exist", dir)
		}
	}
	if got := len(m.Names()); got != 0 {
		t.Errorf("directories counted as files: %d", got)
	}
}
