package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSeenSet(t *testing.T) {
	s := NewSeenSet("a", "", "b", "a")

	if diff := cmp.Diff(2, s.Len()); diff != "" {
		t.Errorf("Len (-want +got):\n%s", diff)
	}
	if !s.Contains("a") || s.Contains("c") {
		t.Errorf("Contains: got a=%v c=%v", s.Contains("a"), s.Contains("c"))
	}

	if !s.Mark("c") {
		t.Error("Mark(c) should report a new id")
	}
	if s.Mark("c") {
		t.Error("Mark(c) twice should be idempotent")
	}
	if s.Mark("a") {
		t.Error("Mark(a) of a loaded id should not report new")
	}
	if s.Mark("") {
		t.Error("Mark of empty id should be ignored")
	}

	if diff := cmp.Diff([]string{"a", "b", "c"}, s.IDs()); diff != "" {
		t.Errorf("IDs (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c"}, s.Added()); diff != "" {
		t.Errorf("Added (-want +got):\n%s", diff)
	}
}

func TestFileLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is empty", func(t *testing.T) {
		f := NewFile(filepath.Join(t.TempDir(), "seen_posts.txt"))
		s, err := f.Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if diff := cmp.Diff(0, s.Len()); diff != "" {
			t.Errorf("Len (-want +got):\n%s", diff)
		}
	})

	t.Run("blank lines and whitespace ignored", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seen_posts.txt")
		if err := os.WriteFile(path, []byte("t3_a\n\n  t3_b  \n\nt3_a\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		s, err := NewFile(path).Load(ctx)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if diff := cmp.Diff([]string{"t3_a", "t3_b"}, s.IDs()); diff != "" {
			t.Errorf("IDs (-want +got):\n%s", diff)
		}
	})
}

func TestFilePersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "seen_posts.txt")
	f := NewFile(path)

	s, err := f.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s.Mark("t3_b")
	s.Mark("t3_a")
	if err := f.Persist(ctx, s); err != nil {
		t.Fatalf("persist: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff("t3_a\nt3_b\n", string(data)); diff != "" {
		t.Errorf("file content (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("tmp file should be gone after persist, stat err: %v", err)
	}

	again, err := f.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff(s.IDs(), again.IDs()); diff != "" {
		t.Errorf("reloaded IDs (-want +got):\n%s", diff)
	}
}

func TestFilePersistFailureKeepsExisting(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "seen_posts.txt")
	if err := os.WriteFile(path, []byte("t3_old\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	// A directory squatting on the tmp name makes the tmp write fail.
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := NewFile(path).Persist(ctx, NewSeenSet("t3_new")); err == nil {
		t.Fatal("expected error, got nil")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff("t3_old\n", string(data)); diff != "" {
		t.Errorf("existing file changed (-want +got):\n%s", diff)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	empty, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(0, empty.Len()); diff != "" {
		t.Errorf("Len (-want +got):\n%s", diff)
	}

	empty.Mark("t3_a")
	empty.Mark("t3_b")
	if err := s.Persist(ctx, empty); err != nil {
		t.Fatalf("persist: %v", err)
	}
	// Persisting again with an overlapping set must not fail on duplicates.
	if err := s.Persist(ctx, NewSeenSet("t3_a", "t3_c")); err != nil {
		t.Fatalf("persist again: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if diff := cmp.Diff([]string{"t3_a", "t3_b", "t3_c"}, got.IDs()); diff != "" {
		t.Errorf("IDs (-want +got):\n%s", diff)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantFile bool
	}{
		{name: "text file", path: filepath.Join(dir, "seen_posts.txt"), wantFile: true},
		{name: "no extension", path: filepath.Join(dir, "seen"), wantFile: true},
		{name: "sqlite", path: filepath.Join(dir, "seen.db"), wantFile: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Open(tt.path)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			t.Cleanup(func() { _ = st.Close() })
			_, isFile := st.(*File)
			if diff := cmp.Diff(tt.wantFile, isFile); diff != "" {
				t.Errorf("backend is file (-want +got):\n%s", diff)
			}
		})
	}
}
