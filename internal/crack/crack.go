// Package crack implements the crack coordinator and worker pool of
// spec.md §4.6/§4.7: given a target ciphertext, salt, and thread count, it
// partitions the dictionary across n workers that race to find a matching
// plaintext, and joins all of them before replying.
package crack

import (
	"sync"

	"blitter.com/go/crackserver/internal/crackhash"
	"blitter.com/go/crackserver/internal/dictionary"
)

const (
	// MinWorkers is the smallest accepted thread count.
	MinWorkers = 1
	// MaxWorkers is the largest accepted thread count.
	MaxWorkers = 50
)

// Result is the outcome of one crack job.
type Result struct {
	Plain string
	Found bool
}

// Run spawns n workers over dict, each scanning its slice (§3 "Worker
// slice") for a word w with H(w, salt) == target. It joins every worker
// before returning — a worker may be mid-evaluation when another finds a
// match, and the coordinator must not let the caller reuse the dictionary
// or salt while a peer still touches them (§4.6).
//
// On multiple simultaneous matches the lowest worker id wins; within a
// worker the lowest index wins, because each worker scans ascending and
// stops at its first hit (§4.6, §8 "Determinism").
func Run(dict *dictionary.Dictionary, target, salt string, n int) Result {
	results := make([]string, n)
	found := make([]bool, n)

	stop := make(chan struct{})
	var stopOnce sync.Once
	signalStop := func() { stopOnce.Do(func() { close(stop) }) }

	var wg sync.WaitGroup
	wg.Add(n)
	for id := 0; id < n; id++ {
		go func(id int) {
			defer wg.Done()
			start, end := dict.Bounds(id, n)
			results[id], found[id] = worker(dict, start, end, target, salt, stop, signalStop)
		}(id)
	}
	wg.Wait()

	for id := 0; id < n; id++ {
		if found[id] {
			return Result{Plain: results[id], Found: true}
		}
	}
	return Result{}
}

// worker scans dict[start:end], computing H(word, salt) against target
// with its own per-call hash state (§4.7, §9 — the hash primitive is not
// safe to share across concurrent callers). It polls stop between words so
// a peer's match is noticed within one hash evaluation, and never reports
// its own exhaustion as a value a peer can consume: an empty, not-found
// return is the only signal of "did not find" (§4.7).
func worker(dict *dictionary.Dictionary, start, end int, target, salt string, stop <-chan struct{}, signalStop func()) (plain string, found bool) {
	state := crackhash.NewState()
	for i := start; i < end; i++ {
		select {
		case <-stop:
			return "", false
		default:
		}

		word := dict.Word(i)
		c, err := state.Hash(word, salt)
		if err != nil {
			continue
		}
		if c == target {
			signalStop()
			return word, true
		}
	}
	return "", false
}
