// crackserver is the network password-cracking service: it loads a
// dictionary, binds a TCP listener, and answers crypt/crack requests from
// any number of crackclient connections gated by an admission controller.
//
// Copyright (c) 2017-2019 Russell Magee
// Licensed under the terms of the MIT license.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"blitter.com/go/crackserver/internal/dictionary"
	"blitter.com/go/crackserver/internal/server"
	"blitter.com/go/crackserver/logger"
)

var (
	version   string
	gitCommit string // set in -ldflags by build

	// Log is the syslog-backed diagnostic writer (see logger package).
	Log *logger.Writer
)

const (
	exitUsage           = 1
	exitDictionaryOpen  = 2
	exitDictionaryEmpty = 3
	exitListenFailed    = 4
)

func usageError(fs *flag.FlagSet, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	fs.Usage()
	os.Exit(exitUsage)
}

func validPort(port string) bool {
	if port == "0" {
		return true
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1024 && n <= 65535
}

func main() {
	fs := flag.NewFlagSet("crackserver", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		vopt     bool
		maxConn  int
		port     string
		dictPath string
	)
	fs.BoolVar(&vopt, "v", false, "show version")
	fs.IntVar(&maxConn, "maxconn", 0, "maximum concurrent connections (0 = unbounded)")
	fs.StringVar(&port, "port", "0", `listening port ("0" chooses an ephemeral port)`)
	fs.StringVar(&dictPath, "dictionary", "", "path to the dictionary word list")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(exitUsage)
	}

	if vopt {
		fmt.Printf("version %s (%s)\n", version, gitCommit)
		os.Exit(0)
	}

	if maxConn < 0 {
		usageError(fs, "--maxconn must be non-negative, got %d", maxConn)
	}
	if !validPort(port) {
		usageError(fs, `--port must be "0" or in [1024, 65535], got %q`, port)
	}
	if dictPath == "" {
		usageError(fs, "--dictionary is required")
	}

	dict, err := dictionary.Load(dictPath)
	if err != nil {
		if err == dictionary.ErrEmpty {
			fmt.Fprintf(os.Stderr, "crackserver: dictionary %s yielded no usable words\n", dictPath)
			os.Exit(exitDictionaryEmpty)
		}
		fmt.Fprintf(os.Stderr, "crackserver: %v\n", err)
		os.Exit(exitDictionaryOpen)
	}

	Log, _ = logger.New(logger.LOG_DAEMON|logger.LOG_INFO|logger.LOG_NOTICE|logger.LOG_ERR, "crackserver") // nolint: gosec
	defer logger.LogClose()                                                                               // nolint: errcheck

	srv, err := server.Listen(port, maxConn, dict, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crackserver: %v\n", err)
		os.Exit(exitListenFailed)
	}

	logger.LogNotice(fmt.Sprintf("crackserver listening on port %d, maxconn=%d, %d dictionary words", srv.Port(), maxConn, dict.Len())) // nolint: errcheck

	if err := srv.Serve(); err != nil {
		logger.LogErr(fmt.Sprintf("serve: %v", err)) // nolint: errcheck
		fmt.Fprintf(os.Stderr, "crackserver: %v\n", err)
		os.Exit(exitListenFailed)
	}
}
