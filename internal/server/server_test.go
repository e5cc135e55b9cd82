package server

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"blitter.com/go/crackserver/internal/dictionary"
)

func testDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words")
	if err := os.WriteFile(path, []byte("hello\nworld\nsecret\nabc\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	d, err := dictionary.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return d
}

func mustListen(t *testing.T, maxConn int) (*Server, string) {
	t.Helper()
	dict := testDict(t)
	var diag bytes.Buffer
	srv, err := Listen("0", maxConn, dict, &diag)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { srv.ln.Close() })
	go srv.Serve() // nolint: errcheck

	port := strings.TrimSpace(diag.String())
	if port == "" {
		t.Fatal("diagnostic stream empty after Listen")
	}
	if _, err := strconv.Atoi(port); err != nil {
		t.Fatalf("diagnostic port %q not numeric: %v", port, err)
	}
	return srv, port
}

func dial(t *testing.T, port string) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp4", "127.0.0.1:"+port)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	return conn
}

func request(t *testing.T, conn net.Conn, line string) string {
	t.Helper()
	if _, err := fmt.Fprintf(conn, "%s\n", line); err != nil {
		t.Fatalf("write: %v", err)
	}
	resp, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return strings.TrimSuffix(resp, "\n")
}

func TestEphemeralPortInRange(t *testing.T) {
	_, port := mustListen(t, 0)
	p, _ := strconv.Atoi(port)
	if p < 1024 || p > 65535 {
		t.Fatalf("bound port %d out of [1024, 65535]", p)
	}
}

func TestCryptAndCrackOverWire(t *testing.T) {
	_, port := mustListen(t, 0)
	conn := dial(t, port)
	defer conn.Close()

	c1 := request(t, conn, "crypt hello ab")
	if len(c1) != 13 {
		t.Fatalf("crypt response = %q, want 13 bytes", c1)
	}
	got := request(t, conn, fmt.Sprintf("crack %s 4", c1))
	if got != "hello" {
		t.Fatalf("crack response = %q, want hello", got)
	}
}

func TestInvalidRequestKeepsConnectionOpen(t *testing.T) {
	_, port := mustListen(t, 0)
	conn := dial(t, port)
	defer conn.Close()

	if got := request(t, conn, "bogus a b"); got != ":invalid" {
		t.Fatalf("response = %q, want :invalid", got)
	}
	// connection must still be usable afterwards
	if got := request(t, conn, "crypt hello ab"); len(got) != 13 {
		t.Fatalf("response after :invalid = %q, want 13-byte ciphertext", got)
	}
}

func TestMaxConnOneBlocksSecondClient(t *testing.T) {
	_, port := mustListen(t, 1)

	first := dial(t, port)
	defer first.Close()
	if got := request(t, first, "crypt hello ab"); len(got) != 13 {
		t.Fatalf("first client response = %q", got)
	}

	second := dial(t, port)
	defer second.Close()

	fmt.Fprintf(second, "crypt hello ab\n") // nolint: errcheck
	replied := make(chan struct{})
	go func() {
		bufio.NewReader(second).ReadString('\n') // nolint: errcheck
		close(replied)
	}()

	select {
	case <-replied:
		t.Fatal("second client got a reply before first disconnected")
	case <-time.After(150 * time.Millisecond):
	}

	first.Close()

	select {
	case <-replied:
	case <-time.After(2 * time.Second):
		t.Fatal("second client never got a reply after first disconnected")
	}
}
