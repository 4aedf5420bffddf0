package main

import (
	"context"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/folbricht/tempfile"
	"github.com/pkg/errors"
)

// gcsSource fetches one object from Google Cloud Storage into a local spool
// file. Grounded on gcs.go's NewGCStoreBase (bucket/prefix split from a
// gs:// URL, storage.NewClient(ctx)), trimmed to a single-object read.
type gcsSource struct {
	client *storage.Client
	bucket string
	object string
	url    string
}

func newGCSSource(u *url.URL) (*gcsSource, error) {
	client, err := storage.NewClient(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, u.String())
	}
	return &gcsSource{
		client: client,
		bucket: u.Host,
		object: strings.TrimPrefix(u.Path, "/"),
		url:    u.String(),
	}, nil
}

func (s *gcsSource) Fetch(ctx context.Context) (string, func(), error) {
	rc, err := s.client.Bucket(s.bucket).Object(s.object).NewReader(ctx)
	if err != nil {
		return "", nil, errors.Wrap(err, s.url)
	}
	defer rc.Close()

	f, err := tempfile.New("", "pgrep-gcs-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { f.Close(); removeFile(f.Name()) }

	if _, err := io.Copy(f, rc); err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, s.url)
	}
	return f.Name(), cleanup, nil
}
