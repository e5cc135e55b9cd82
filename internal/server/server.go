// Package server implements the listener and connection handler of
// spec.md §4.2/§4.4: it binds the configured port, advertises the actual
// bound port on the diagnostic stream before accepting, then gates every
// accepted connection through the admission controller before spawning a
// handler that speaks the line protocol until EOF.
package server

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"blitter.com/go/crackserver/internal/admission"
	"blitter.com/go/crackserver/internal/dictionary"
	"blitter.com/go/crackserver/internal/protocol"
	"blitter.com/go/crackserver/logger"
)

// Server owns the listening socket, the admission controller, and a
// reference to the read-only dictionary shared by every connection.
type Server struct {
	ln   net.Listener
	adm  *admission.Controller
	dict *dictionary.Dictionary
}

// Listen binds an IPv4 TCP listener on port (which may be "0" to request
// an ephemeral port), writes the actually-bound port to diag followed by a
// newline, and returns a Server ready to Serve. This must happen before
// the first Accept, since "0" callers rely on this line to learn their
// port (spec.md §4.2).
func Listen(port string, maxConn int, dict *dictionary.Dictionary, diag io.Writer) (*Server, error) {
	lc := net.ListenConfig{Control: setReuseAddr}
	ln, err := lc.Listen(context.Background(), "tcp4", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("server: listen: %w", err)
	}

	bound := ln.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(diag, "%d\n", bound)
	if f, ok := diag.(*os.File); ok {
		f.Sync() // nolint: errcheck
	}

	return &Server{ln: ln, adm: admission.New(maxConn), dict: dict}, nil
}

// Port returns the actual bound port number.
func (s *Server) Port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

// Serve accepts connections until Accept itself fails, which is fatal to
// the process (spec.md §7, and the open question in §9 about whether that
// should instead be logged and continued). Each accepted connection waits
// for admission before a handler goroutine is spawned for it; handlers are
// not joined — they signal completion by releasing their admission slot.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return fmt.Errorf("server: accept: %w", err)
		}
		s.adm.Enter()
		logger.LogInfo(fmt.Sprintf("accepted %s (active=%d)", conn.RemoteAddr(), s.adm.Active())) // nolint: errcheck
		go s.handle(conn)
	}
}

// handle drives one connection through the
// ADMITTED -> READING -> PROCESSING -> WRITING -> ... -> CLOSED state
// machine of spec.md §4.8, releasing admission on every exit path.
func (s *Server) handle(conn net.Conn) {
	defer func() {
		conn.Close() // nolint: errcheck
		s.adm.Leave()
	}()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return // EOF or transport error: close and release admission (§4.4, §7)
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		resp := protocol.Process(line, s.dict)

		if _, err := w.WriteString(resp); err != nil {
			return
		}
		if err := w.WriteByte('\n'); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}
	}
}
