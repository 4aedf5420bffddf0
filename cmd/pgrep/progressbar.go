package main

import (
	"os"

	pb "gopkg.in/cheggaaa/pb.v1"

	"golang.org/x/crypto/ssh/terminal"

	"github.com/barrowlang/pgrep"
)

// consoleProgressBar wraps github.com/cheggaaa/pb.v1, matching
// cmd/desync/progressbar.go's DefaultProgressBar wrapper shape.
type consoleProgressBar struct {
	*pb.ProgressBar
}

var _ pgrep.ProgressBar = consoleProgressBar{}

// newConsoleProgressBar returns nil when stderr isn't a terminal, the same
// TTY gate cmd/desync/progressbar.go uses, so a redirected or piped run
// never emits carriage-return noise into a log file.
func newConsoleProgressBar(prefix string) pgrep.ProgressBar {
	if !terminal.IsTerminal(int(os.Stderr.Fd())) {
		return nil
	}
	bar := pb.New(0).Prefix(prefix)
	bar.ShowCounters = false
	bar.Output = os.Stderr
	return consoleProgressBar{bar}
}

func (p consoleProgressBar) SetTotal(total int) { p.ProgressBar.SetTotal(total) }
func (p consoleProgressBar) Start()             { p.ProgressBar.Start() }
func (p consoleProgressBar) Set(current int)    { p.ProgressBar.Set(current) }
