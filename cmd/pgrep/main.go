package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/barrowlang/pgrep"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

// enableVerboseLogging sends the core package's logger to stderr at debug
// level, the same --verbose wiring cmd/desync/root.go does for its own
// package logger.
func enableVerboseLogging() {
	pgrep.Log.SetOutput(os.Stderr)
	pgrep.Log.SetLevel(logrus.DebugLevel)
}
