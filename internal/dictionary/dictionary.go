// Package dictionary loads and holds the read-only word list crackserver
// brute-forces against (spec §3 "Dictionary").
//
// Once built, a Dictionary is immutable: it is handed by reference to every
// connection handler and every crack worker without copying, and none of
// them are permitted to mutate it.
package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

const (
	// MinWordLen is the shortest word retained from the source file.
	MinWordLen = 1
	// MaxWordLen is the longest word retained. The hash primitive only
	// looks at a word's first 8 bytes, so anything past that would just
	// be duplicate work (crackserver.c's MAX_WORD_LEN).
	MaxWordLen = 8
)

// ErrEmpty is returned by Load when every line of the source file was
// filtered out, leaving nothing to crack against.
var ErrEmpty = errors.New("dictionary: no plain text words to test")

// Dictionary is the ordered, read-only sequence of candidate plaintexts.
type Dictionary struct {
	words []string
}

// Load reads path line by line, retaining only words whose length falls in
// [MinWordLen, MaxWordLen]. Duplicate words are kept, not collapsed.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: unable to open %q: %w", path, err)
	}
	defer f.Close()

	var words []string
	sc := bufio.NewScanner(f)
	// words files can contain long lines; grow well past the default token
	// size rather than fail a scan partway through.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		w := sc.Text()
		n := len(w)
		if n < MinWordLen || n > MaxWordLen {
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: reading %q: %w", path, err)
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return &Dictionary{words: words}, nil
}

// Len returns the number of retained words, M in spec §3.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Word returns the word at index i. Callers own the index bounds; workers
// derive them from Bounds.
func (d *Dictionary) Word(i int) string {
	return d.words[i]
}

// Bounds returns the half-open index range [start, end) worker id of n
// owns, per spec §3: even split, with the last worker absorbing the
// remainder so every index in [0, Len()) has exactly one owner.
func (d *Dictionary) Bounds(id, n int) (start, end int) {
	m := len(d.words)
	chunk := m / n
	start = id * chunk
	if id == n-1 {
		end = m
	} else {
		end = start + chunk
	}
	return start, end
}
