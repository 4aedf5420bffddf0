package main

import (
	"context"
	"fmt"
	"net/url"
)

// Source resolves a search target into a local, readable path. Local paths
// and stdin ("-") are returned as-is; remote schemes are fetched into a
// spooled temp file first, grounded on storerouter.go's scheme-based
// dispatch, re-targeted at read-only resolution since this pipeline reads
// one file rather than assembling chunks from a store.
type Source interface {
	// Fetch returns a local path ready for pgrep's Reader and a cleanup
	// func the caller must run once done with it.
	Fetch(ctx context.Context) (path string, cleanup func(), err error)
}

// newSource dispatches target to the Source implementation for its scheme.
// A bare "-" selects stdin; a target with no scheme is treated as a local
// path.
func newSource(target string, cfg *Config) (Source, error) {
	if target == "-" {
		return stdinSource{}, nil
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" {
		return localSource{path: target}, nil
	}
	switch u.Scheme {
	case "s3", "s3+http", "s3+https":
		return newS3Source(u, cfg)
	case "sftp":
		return newSFTPSource(u)
	case "gs":
		return newGCSSource(u)
	case "http", "https":
		return newHTTPSource(u, cfg)
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

// localSource is a plain filesystem path; no spooling needed.
type localSource struct{ path string }

func (s localSource) Fetch(context.Context) (string, func(), error) {
	return s.path, func() {}, nil
}

// stdinSource signals that the caller should build a StreamReader over
// os.Stdin directly rather than opening a path; Fetch is never called on it.
type stdinSource struct{}

func (stdinSource) Fetch(context.Context) (string, func(), error) {
	return "", func() {}, fmt.Errorf("stdin has no local path")
}
