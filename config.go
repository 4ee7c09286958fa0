// Copyright (c) 2026 The Treap-vs-BST-Comparison developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogLevel     = "info"
	defaultLogDirname   = "logs"
	defaultLogFilename  = "feedsim.log"
	defaultLimit        = 50000
	defaultLikeInterval = 100
	defaultLikeCount    = 10
	defaultRecent       = 5
	defaultTreeKind     = "both"
)

var (
	feedsimHomeDir = appHomeDir("feedsim")
	defaultLogDir  = filepath.Join(feedsimHomeDir, defaultLogDirname)
)

// treeKinds enumerates the valid values for the --tree option.
var treeKinds = []string{"bst", "treap", "both"}

// config defines the configuration options for feedsim.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion  bool   `short:"V" long:"version" description:"Display version information and exit"`
	Input        string `short:"i" long:"input" description:"Line-delimited JSON submissions file, zstandard compressed (.zst) or plain"`
	Limit        int64  `short:"n" long:"limit" description:"Maximum number of posts to ingest -- Use 0 for no limit"`
	Tree         string `long:"tree" description:"Index to exercise {bst, treap, both}"`
	LikeInterval int    `long:"likeinterval" description:"Apply a batch of simulated likes every this many inserts -- Use 0 to disable the like simulation"`
	LikeCount    int    `long:"likecount" description:"Number of simulated likes per batch"`
	Recent       int    `short:"k" long:"recent" description:"Number of most recent posts to include in the final report"`
	Seed         int64  `long:"seed" description:"Seed for the like simulation -- Use 0 to seed from the current time"`
	Scenario     bool   `long:"scenario" description:"Run the fixed five-post walkthrough instead of streaming a dataset"`
	LogDir       string `long:"logdir" description:"Directory to log output"`
	DebugLevel   string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	CPUProfile   string `long:"cpuprofile" description:"Write CPU profile to the specified file"`
}

// appHomeDir returns an OS appropriate home directory for the named
// application.
func appHomeDir(appName string) string {
	// Search for Windows APPDATA first.  This won't exist on POSIX OSes.
	appData := os.Getenv("APPDATA")
	if appData != "" {
		return filepath.Join(appData, appName)
	}

	// Fall back to standard HOME directory that works for most POSIX OSes.
	home := os.Getenv("HOME")
	if home != "" {
		return filepath.Join(home, "."+appName)
	}

	// In the worst case, use the current directory.
	return "."
}

// validTreeKind returns whether or not kind is a supported index selection.
func validTreeKind(kind string) bool {
	for _, known := range treeKinds {
		if kind == known {
			return true
		}
	}
	return false
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

// validLogLevel returns whether or not logLevel is a valid debug log level.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

// parseAndSetDebugLevels attempts to parse the specified debug level and set
// the levels accordingly.  An appropriate error is returned if anything is
// invalid.
func parseAndSetDebugLevels(debugLevel string) error {
	// When the specified string doesn't have any delimters, treat it as
	// the log level for all subsystems.
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		// Validate debug log level.
		if !validLogLevel(debugLevel) {
			str := "The specified debug level [%v] is invalid"
			return fmt.Errorf(str, debugLevel)
		}

		// Change the logging level for all subsystems.
		setLogLevels(debugLevel)
		return nil
	}

	// Split the specified string into subsystem/level pairs while detecting
	// issues and update the log levels accordingly.
	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			str := "The specified debug level contains an invalid " +
				"subsystem/level pair [%v]"
			return fmt.Errorf(str, logLevelPair)
		}

		// Extract the specified subsystem and log level.
		fields := strings.Split(logLevelPair, "=")
		subsysID, logLevel := fields[0], fields[1]

		// Validate subsystem.
		if _, exists := subsystemLoggers[subsysID]; !exists {
			str := "The specified subsystem [%v] is invalid -- " +
				"supported subsytems %v"
			return fmt.Errorf(str, subsysID, supportedSubsystems())
		}

		// Validate log level.
		if !validLogLevel(logLevel) {
			str := "The specified debug level [%v] is invalid"
			return fmt.Errorf(str, logLevel)
		}

		setLogLevel(subsysID, logLevel)
	}

	return nil
}

// loadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse CLI options and overwrite/add any specified options
//
// The above results in feedsim functioning properly without any config
// settings while still allowing the user to override settings with command
// line options.
func loadConfig() (*config, []string, error) {
	// Default config.
	cfg := config{
		Limit:        defaultLimit,
		Tree:         defaultTreeKind,
		LikeInterval: defaultLikeInterval,
		LikeCount:    defaultLikeCount,
		Recent:       defaultRecent,
		LogDir:       defaultLogDir,
		DebugLevel:   defaultLogLevel,
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

	// Show the version and exit if the version flag was specified.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	if cfg.ShowVersion {
		fmt.Println(appName, "version", version())
		os.Exit(0)
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename))

	// Parse, validate, and set debug log level(s).
	if err := parseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("loadConfig: %v", err)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// Validate the index selection.
	if !validTreeKind(cfg.Tree) {
		str := "loadConfig: The specified tree [%v] is invalid -- " +
			"supported trees %v"
		err := fmt.Errorf(str, cfg.Tree, treeKinds)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	// The scenario mode supplies its own fixed posts; otherwise an input
	// file is required and must exist.
	if !cfg.Scenario {
		if cfg.Input == "" {
			err := fmt.Errorf("loadConfig: An input submissions " +
				"file is required unless --scenario is used")
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			return nil, nil, err
		}
		if !fileExists(cfg.Input) {
			str := "loadConfig: The specified input file [%v] " +
				"does not exist"
			err := fmt.Errorf(str, cfg.Input)
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			return nil, nil, err
		}
	}

	if cfg.Limit < 0 || cfg.LikeInterval < 0 || cfg.LikeCount < 0 {
		err := fmt.Errorf("loadConfig: The limit, like interval, " +
			"and like count options may not be negative")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	if cfg.Recent < 1 {
		str := "loadConfig: The recent post count [%v] must be at " +
			"least 1"
		err := fmt.Errorf(str, cfg.Recent)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}
