package relocate

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path"
	"strings"
)

const defaultS3Region = "us-east-1"

// S3Config holds S3 uploader parameters.
type S3Config struct {
	BucketURL    string // s3://bucket/prefix, prefix optional
	Endpoint     string
	Region       string
	AccessKey    string
	SecretKey    string
	SessionToken string
	UseSSL       bool
}

// S3Uploader uploads files with the AWS CLI (`aws s3 cp`).
type S3Uploader struct {
	bucket    string
	keyPrefix string
	cfg       S3Config
	command   func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewS3Uploader constructs an uploader from an S3 bucket URL and static credentials.
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	bucket, prefix, err := parseS3BucketURL(cfg.BucketURL)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("s3: access key and secret key are required")
	}
	if _, err := exec.LookPath("aws"); err != nil {
		return nil, fmt.Errorf("s3: aws cli not found in PATH")
	}
	if strings.TrimSpace(cfg.Region) == "" {
		cfg.Region = defaultS3Region
	}
	return &S3Uploader{
		bucket:    bucket,
		keyPrefix: prefix,
		cfg:       cfg,
		command:   exec.CommandContext,
	}, nil
}

// ObjectURL returns the s3:// URL localPath is uploaded to.
func (u *S3Uploader) ObjectURL(localPath string) string {
	objectKey := path.Base(localPath)
	if u.keyPrefix != "" {
		objectKey = path.Join(u.keyPrefix, objectKey)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, objectKey)
}

// UploadFile uploads localPath to the configured bucket and key prefix.
func (u *S3Uploader) UploadFile(ctx context.Context, localPath string) error {
	args := []string{"s3", "cp", localPath, u.ObjectURL(localPath), "--region", u.cfg.Region, "--only-show-errors"}
	if endpoint := normalizeEndpoint(u.cfg.Endpoint, u.cfg.UseSSL); endpoint != "" {
		args = append(args, "--endpoint-url", endpoint)
	}

	cmd := u.command(ctx, "aws", args...)
	cmd.Env = append(os.Environ(),
		"AWS_ACCESS_KEY_ID="+u.cfg.AccessKey,
		"AWS_SECRET_ACCESS_KEY="+u.cfg.SecretKey,
		"AWS_DEFAULT_REGION="+u.cfg.Region,
	)
	if strings.TrimSpace(u.cfg.SessionToken) != "" {
		cmd.Env = append(cmd.Env, "AWS_SESSION_TOKEN="+u.cfg.SessionToken)
	}
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("s3 upload command failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// S3Mover uploads the report and removes the local copy once the upload succeeded.
type S3Mover struct {
	uploader Uploader
	dest     string
}

// Destination returns the bucket URL.
func (m *S3Mover) Destination() string { return m.dest }

// Move uploads src and deletes it locally. On upload failure src is left in place.
func (m *S3Mover) Move(ctx context.Context, src string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNoReport, src)
		}
		return "", fmt.Errorf("relocate: stat %s: %w", src, err)
	}

	dst := strings.TrimRight(m.dest, "/") + "/" + path.Base(src)
	if u, ok := m.uploader.(*S3Uploader); ok {
		dst = u.ObjectURL(src)
	}
	if err := m.uploader.UploadFile(ctx, src); err != nil {
		return "", fmt.Errorf("relocate: upload %s to %s: %w", src, dst, err)
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("relocate: remove %s after upload: %w", src, err)
	}
	return dst, nil
}

func normalizeEndpoint(endpoint string, useSSL bool) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return ""
	}
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	scheme := "https://"
	if !useSSL {
		scheme = "http://"
	}
	return scheme + endpoint
}

func parseS3BucketURL(raw string) (bucket string, prefix string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("s3: parse destination: %w", err)
	}
	if u.Scheme != "s3" {
		return "", "", fmt.Errorf("s3: destination must use s3:// scheme")
	}
	if strings.TrimSpace(u.Host) == "" {
		return "", "", fmt.Errorf("s3: destination missing bucket name")
	}

	prefix = strings.Trim(strings.TrimSpace(u.Path), "/")
	return u.Host, prefix, nil
}
