package main

import "os"

// removeFile deletes a spool file created by a remote Source, ignoring a
// missing file (already cleaned up, or cleanup ran twice).
func removeFile(name string) {
	if name == "" {
		return
	}
	_ = os.Remove(name)
}
