package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/folbricht/tempfile"
	"github.com/pkg/errors"
)

// httpSource fetches one file over plain HTTP(S) into a local spool file.
// Grounded on remotehttp.go's RemoteHTTPBase client construction, trimmed
// to a single unauthenticated GET -- this tool has no chunk store wire
// protocol to speak.
type httpSource struct {
	client *http.Client
	url    string
}

func newHTTPSource(u *url.URL, cfg *Config) (*httpSource, error) {
	return &httpSource{client: &http.Client{Timeout: cfg.HTTPTimeout}, url: u.String()}, nil
}

func (s *httpSource) Fetch(ctx context.Context) (string, func(), error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", nil, errors.Wrap(err, s.url)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("%s: unexpected status %s", s.url, resp.Status)
	}

	f, err := tempfile.New("", "pgrep-http-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { f.Close(); removeFile(f.Name()) }

	if _, err := io.Copy(f, resp.Body); err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, s.url)
	}
	return f.Name(), cleanup, nil
}
