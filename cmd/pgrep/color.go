package main

import (
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"
)

// matchColor is the fixed SGR sequence applied to matched text; the pack
// gives no precedent for a configurable palette, so the hue itself is a
// constant rather than a flag.
const (
	matchColor = "\x1b[01;31m\x1b[K"
	colorReset = "\x1b[0m\x1b[K"
)

// isTerminalStdout reports whether stdout is attached to a terminal, used
// to pick the default color mode the same way newConsoleProgressBar gates
// on stderr's terminal-ness.
func isTerminalStdout() bool {
	return terminal.IsTerminal(int(os.Stdout.Fd()))
}

// colorize wraps every occurrence of needle in line with matchColor. The
// comparison is literal and case-sensitive: under a case-insensitive or
// regex search, occurrences whose text differs from needle are not
// highlighted, and a line with no literal occurrence is returned unmodified.
func colorize(line, needle string) string {
	if needle == "" {
		return line
	}
	var b strings.Builder
	rest := line
	for {
		i := strings.Index(rest, needle)
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(matchColor)
		b.WriteString(needle)
		b.WriteString(colorReset)
		rest = rest[i+len(needle):]
	}
	return b.String()
}
