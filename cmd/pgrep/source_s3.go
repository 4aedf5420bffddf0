package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/folbricht/tempfile"
	minio "github.com/minio/minio-go/v6"
	"github.com/pkg/errors"
)

// s3Source fetches a single object from an S3-compatible endpoint into a
// local spool file. Grounded on s3.go's NewS3Store (URL shape, bucket/key
// split, minio client construction) stripped down to the read-one-object
// path, since this tool has no chunk store concept.
type s3Source struct {
	client *minio.Client
	bucket string
	key    string
	url    string
}

func newS3Source(u *url.URL, cfg *Config) (*s3Source, error) {
	if !strings.HasPrefix(u.Scheme, "s3") {
		return nil, fmt.Errorf("invalid scheme %q, expected s3, s3+http or s3+https", u.Scheme)
	}
	useSSL := strings.HasSuffix(u.Scheme, "s") || u.Scheme == "s3"

	path := strings.TrimPrefix(u.Path, "/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("expected s3://bucket/key in %q", u.String())
	}

	creds, _ := cfg.GetS3CredentialsFor(u)
	client, err := minio.NewWithCredentials(u.Host, creds, useSSL, "")
	if err != nil {
		return nil, errors.Wrap(err, u.String())
	}
	return &s3Source{client: client, bucket: parts[0], key: parts[1], url: u.String()}, nil
}

func (s *s3Source) Fetch(ctx context.Context) (string, func(), error) {
	obj, err := s.client.GetObjectWithContext(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return "", nil, errors.Wrap(err, s.url)
	}
	defer obj.Close()

	f, err := tempfile.New("", "pgrep-s3-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { f.Close(); removeFile(f.Name()) }

	if _, err := io.Copy(f, obj); err != nil {
		cleanup()
		return "", nil, errors.Wrap(err, s.url)
	}
	return f.Name(), cleanup, nil
}
