package pgrep

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Log is the package-level logger. It discards output by default so the
// library stays silent unless a caller (typically cmd/pgrep) attaches a
// handler.
var Log = logrus.New()

func init() {
	Log.SetOutput(io.Discard)
}
