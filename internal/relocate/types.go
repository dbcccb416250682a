// Package relocate moves the finished report from its working path to the
// configured destination: a local directory or an s3:// bucket URL.
package relocate

import (
	"context"
	"errors"
)

// ErrNoReport is returned when there is no report file to move.
var ErrNoReport = errors.New("relocate: report file does not exist")

// Config selects and configures the destination.
type Config struct {
	Destination string // directory path or s3://bucket/prefix

	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	S3SessionToken string
	S3UseSSL       bool
}

// Mover relocates one file and returns where it ended up.
type Mover interface {
	Move(ctx context.Context, src string) (string, error)
	Destination() string
}

// Uploader uploads one local file.
type Uploader interface {
	UploadFile(ctx context.Context, localPath string) error
}
