package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-ini/ini"
	"github.com/minio/minio-go/v6/pkg/credentials"
	"github.com/pkg/errors"
)

// sharedCredentialsFilename returns the SDK's default shared credentials
// file path for the current platform.
func sharedCredentialsFilename() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".aws", "credentials"), nil
}

// refreshableSharedCredentialsProvider reads credentials from the user's
// shared AWS credentials file, re-reading it periodically so updates (e.g.
// rotated session tokens) are picked up without restarting the process.
type refreshableSharedCredentialsProvider struct {
	Filename string
	Profile  string

	exp time.Time
	now func() time.Time
}

func newRefreshableSharedCredentials(filename, profile string, now func() time.Time) *credentials.Credentials {
	return credentials.New(&refreshableSharedCredentialsProvider{
		Filename: filename,
		Profile:  profile,
		exp:      now().Add(time.Minute),
		now:      now,
	})
}

func (p *refreshableSharedCredentialsProvider) IsExpired() bool {
	return p.now().After(p.exp)
}

func (p *refreshableSharedCredentialsProvider) Retrieve() (credentials.Value, error) {
	filename, err := p.filename()
	if err != nil {
		return credentials.Value{}, err
	}
	creds, err := loadProfile(filename, p.profileName())
	if err != nil {
		return credentials.Value{}, err
	}
	p.exp = p.now().Add(time.Minute)
	return creds, nil
}

func loadProfile(filename, profile string) (credentials.Value, error) {
	cfg, err := ini.Load(filename)
	if err != nil {
		return credentials.Value{}, errors.Wrap(err, "failed to load shared credentials file")
	}
	section, err := cfg.GetSection(profile)
	if err != nil {
		return credentials.Value{}, errors.Wrapf(err, "failed to get profile %s", profile)
	}
	id, err := section.GetKey("aws_access_key_id")
	if err != nil {
		return credentials.Value{}, errors.Wrapf(err, "shared credentials %s in %s missing aws_access_key_id", profile, filename)
	}
	secret, err := section.GetKey("aws_secret_access_key")
	if err != nil {
		return credentials.Value{}, errors.Wrapf(err, "shared credentials %s in %s missing aws_secret_access_key", profile, filename)
	}
	token := section.Key("aws_session_token")
	return credentials.Value{
		AccessKeyID:     id.String(),
		SecretAccessKey: secret.String(),
		SessionToken:    token.String(),
	}, nil
}

func (p *refreshableSharedCredentialsProvider) filename() (string, error) {
	if p.Filename != "" {
		return p.Filename, nil
	}
	if p.Filename = os.Getenv("AWS_SHARED_CREDENTIALS_FILE"); p.Filename != "" {
		return p.Filename, nil
	}
	filename, err := sharedCredentialsFilename()
	if err != nil {
		return "", errors.Wrap(err, "user home directory not found")
	}
	p.Filename = filename
	return p.Filename, nil
}

func (p *refreshableSharedCredentialsProvider) profileName() string {
	if p.Profile == "" {
		p.Profile = os.Getenv("AWS_PROFILE")
	}
	if p.Profile == "" {
		p.Profile = "default"
	}
	return p.Profile
}
