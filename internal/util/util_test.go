package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/binctl/internal/util"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	if err := os.WriteFile(src, []byte("payload"), 0755); err != nil {
		t.Fatalf("write src: %v", err)
	}

	dst := filepath.Join(dir, "nested", "deeper", "dst.bin")
	if err := util.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	body, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(body) != "payload" {
		t.Errorf("dst content = %q, want %q", body, "payload")
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("dst mode = %v, want source bits 0755", info.Mode().Perm())
	}
}

func TestCopyFile_OverwriteFixesMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	if err := os.WriteFile(src, []byte("exec"), 0755); err != nil {
		t.Fatalf("write src: %v", err)
	}
	if err := os.WriteFile(dst, []byte("stale"), 0600); err != nil {
		t.Fatalf("write dst: %v", err)
	}

	if err := util.CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat dst: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Errorf("overwritten dst mode = %v, want 0755", info.Mode().Perm())
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	err := util.CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	if err == nil {
		t.Fatal("CopyFile succeeded with a missing source")
	}
}

func TestEnsureDir_Idempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	for i := 0; i < 2; i++ {
		if err := util.EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir pass %d: %v", i+1, err)
		}
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("EnsureDir left no directory: %v", err)
	}
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a"), make([]byte, 100), 0644); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "b"), make([]byte, 50), 0644); err != nil {
		t.Fatalf("write b: %v", err)
	}

	got, err := util.DirSize(dir)
	if err != nil {
		t.Fatalf("DirSize: %v", err)
	}
	if got != 150 {
		t.Errorf("DirSize = %d, want 150", got)
	}
}

func TestDirSize_MissingRoot(t *testing.T) {
	got, err := util.DirSize(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("DirSize: %v", err)
	}
	if got != 0 {
		t.Errorf("DirSize = %d, want 0 for a missing root", got)
	}
}
