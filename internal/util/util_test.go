package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out", "table.tsv")

	if err := AtomicWriteFile(target, []byte("a\tb\n1\t2\n")); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	if string(got) != "a\tb\n1\t2\n" {
		t.Errorf("unexpected content: %q", got)
	}

	// Overwrite must replace, not append.
	if err := AtomicWriteFile(target, []byte("x\n")); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	got, _ = os.ReadFile(target)
	if string(got) != "x\n" {
		t.Errorf("overwrite left stale content: %q", got)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(target))
	if len(entries) != 1 {
		t.Errorf("expected 1 file in dir, found %d", len(entries))
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()

	if FileExists(filepath.Join(dir, "nope.tsv")) {
		t.Error("FileExists true for missing file")
	}
	if !DirExists(dir) {
		t.Error("DirExists false for temp dir")
	}
	if FileExists(dir) {
		t.Error("FileExists true for a directory")
	}
}
