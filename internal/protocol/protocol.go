// Package protocol implements the command processor of spec.md §4.5: it
// parses one request line into (verb, arg1, arg2), validates it, and
// dispatches to crypt or crack, returning the response line (without its
// trailing newline — the caller appends that, per §4.4).
package protocol

import (
	"strconv"
	"strings"

	"blitter.com/go/crackserver/internal/crack"
	"blitter.com/go/crackserver/internal/crackhash"
	"blitter.com/go/crackserver/internal/dictionary"
)

// Invalid and Failed are the two reserved response values (spec.md §6).
const (
	Invalid = ":invalid"
	Failed  = ":failed"
)

// maxThreadDigits bounds the length of the crack thread-count argument
// before it is even parsed as a number, so a string like
// "00000000000000001" is rejected rather than silently accepted by Atoi
// (original_source/a4/crackserver.c's num_places() check, spec.md §4).
var maxThreadDigits = len(strconv.Itoa(crack.MaxWorkers))

// Process parses and executes one request line against dict, returning the
// response line. It never returns an error: every failure mode specified
// by spec.md §4.5/§7 is surfaced as the :invalid or :failed response
// string, and the caller's connection stays open regardless.
func Process(line string, dict *dictionary.Dictionary) string {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) != 3 {
		return Invalid
	}
	verb, arg1, arg2 := fields[0], fields[1], fields[2]

	switch verb {
	case "crypt":
		return doCrypt(arg1, arg2)
	case "crack":
		return doCrack(arg1, arg2, dict)
	default:
		return Invalid
	}
}

func doCrypt(plaintext, salt string) string {
	if !crackhash.ValidSalt(salt) {
		return Invalid
	}
	ciphertext, err := crackhash.NewState().Hash(plaintext, salt)
	if err != nil {
		return Invalid
	}
	return ciphertext
}

func doCrack(ciphertext, threadsArg string, dict *dictionary.Dictionary) string {
	if len(ciphertext) != crackhash.CipherLen {
		return Invalid
	}
	salt := ciphertext[:crackhash.SaltLen]
	if !crackhash.ValidSalt(salt) {
		return Invalid
	}

	if len(threadsArg) == 0 || len(threadsArg) > maxThreadDigits || !isDigits(threadsArg) {
		return Invalid
	}
	n, err := strconv.Atoi(threadsArg)
	if err != nil || n < crack.MinWorkers || n > crack.MaxWorkers {
		return Invalid
	}

	result := crack.Run(dict, ciphertext, salt, n)
	if !result.Found {
		return Failed
	}
	return result.Plain
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
