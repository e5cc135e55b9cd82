package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempDict(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "words")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadFiltersByLength(t *testing.T) {
	path := writeTempDict(t, "a\nhello\nworld\nsecret\nabc\nwaytoolongforthis\n\n")
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"a", "hello", "world", "secret", "abc"}
	if d.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", d.Len(), len(want))
	}
	for i, w := range want {
		if got := d.Word(i); got != w {
			t.Errorf("Word(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestLoadEmptyAfterFilter(t *testing.T) {
	path := writeTempDict(t, "waytoolongforthisdict\nanotherreallylongone\n")
	_, err := Load(path)
	if err != ErrEmpty {
		t.Fatalf("Load() err = %v, want ErrEmpty", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nosuchfile"))
	if err == nil {
		t.Fatal("Load() err = nil, want non-nil")
	}
}

func TestLoadKeepsDuplicates(t *testing.T) {
	path := writeTempDict(t, "echo\necho\necho\n")
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}
}

func TestBoundsPartitionsEveryIndex(t *testing.T) {
	path := writeTempDict(t, "a\nb\nc\nd\ne\nf\ng\n")
	d, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, n := range []int{1, 2, 3, 4, 7, 8, 50} {
		owner := make([]int, d.Len())
		for i := range owner {
			owner[i] = -1
		}
		for id := 0; id < n; id++ {
			start, end := d.Bounds(id, n)
			for i := start; i < end; i++ {
				if owner[i] != -1 {
					t.Fatalf("n=%d: index %d owned by both %d and %d", n, i, owner[i], id)
				}
				owner[i] = id
			}
		}
		for i, o := range owner {
			if o == -1 {
				t.Fatalf("n=%d: index %d owned by nobody", n, i)
			}
		}
	}
}
