// crackclient drives a crackserver connection from either an interactive
// terminal or a job file: each non-comment, non-blank line is sent as a
// request and the response is printed, translating the two sentinel
// responses into the messages a human expects.
//
// Copyright (c) 2017-2019 Russell Magee
// Licensed under the terms of the MIT license.
package main

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	isatty "github.com/mattn/go-isatty"

	"blitter.com/go/crackserver/internal/protocol"
)

const (
	exitUsage         = 1
	exitJobfileOpen   = 2
	exitCannotConnect = 3
	exitServerClosed  = 4
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: crackclient portnum [jobfile]")
}

func main() {
	if len(os.Args) != 2 && len(os.Args) != 3 {
		usage()
		os.Exit(exitUsage)
	}
	port := os.Args[1]

	var in io.Reader = os.Stdin
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	if len(os.Args) == 3 {
		f, err := os.Open(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "crackclient: unable to open job file %q\n", os.Args[2])
			os.Exit(exitJobfileOpen)
		}
		defer f.Close() // nolint: errcheck
		in = f
		interactive = false
	}

	conn, err := net.Dial("tcp4", net.JoinHostPort("localhost", port))
	if err != nil {
		fmt.Fprintf(os.Stderr, "crackclient: unable to connect to port %s\n", port)
		os.Exit(exitCannotConnect)
	}
	defer conn.Close() // nolint: errcheck

	r := bufio.NewReader(in)
	connR := bufio.NewReader(conn)

	serverClosed := false
	for {
		if interactive {
			fmt.Print("crack> ")
		}
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			break
		}
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		if !shouldSend(line) {
			if err == io.EOF {
				break
			}
			continue
		}

		if _, werr := fmt.Fprintf(conn, "%s\n", line); werr != nil {
			serverClosed = true
			break
		}

		resp, rerr := connR.ReadString('\n')
		if rerr != nil {
			serverClosed = true
			break
		}
		resp = strings.TrimSuffix(resp, "\n")

		switch resp {
		case protocol.Invalid:
			fmt.Println("Error in command")
		case protocol.Failed:
			fmt.Println("Unable to decrypt")
		default:
			fmt.Println(resp)
		}

		if err == io.EOF {
			break
		}
	}

	if serverClosed {
		fmt.Fprintln(os.Stderr, "crackclient: server connection terminated")
		os.Exit(exitServerClosed)
	}
}

// shouldSend reports whether line is a real request: blank lines and
// '#'-prefixed comments (job file convention) are skipped silently.
func shouldSend(line string) bool {
	if line == "" {
		return false
	}
	return line[0] != '#'
}
