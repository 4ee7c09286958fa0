// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultChunkSize = 100000
	defaultLogLevel  = "info"
)

// config defines the configuration options for feedpart.
//
// See loadConfig for details on the configuration load process.
type config struct {
	InFile     string `short:"i" long:"infile" description:"File containing the line-delimited JSON submissions, zstandard compressed (.zst) or plain"`
	ChunkSize  int    `short:"c" long:"chunksize" description:"Number of posts per partition treap"`
	Limit      int64  `short:"n" long:"limit" description:"Maximum number of posts to process -- Use 0 for no limit"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// loadConfig initializes and parses the config using command line options.
func loadConfig() (*config, []string, error) {
	// Default config.
	cfg := config{
		ChunkSize:  defaultChunkSize,
		DebugLevel: defaultLogLevel,
	}

	// Parse command line options.
	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	// Ensure the specified submissions file exists.
	if cfg.InFile == "" || !fileExists(cfg.InFile) {
		str := "%s: The specified submissions file [%v] does not exist"
		err := fmt.Errorf(str, "loadConfig", cfg.InFile)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// A partition must be able to hold at least one post.
	if cfg.ChunkSize < 1 {
		str := "%s: The specified chunk size [%v] must be at least 1"
		err := fmt.Errorf(str, "loadConfig", cfg.ChunkSize)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	if cfg.Limit < 0 {
		str := "%s: The specified limit [%v] may not be negative"
		err := fmt.Errorf(str, "loadConfig", cfg.Limit)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}
