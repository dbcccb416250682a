package relocate

import (
	"errors"
	"fmt"
	"strings"
)

// New returns the Mover for cfg.Destination.
func New(cfg Config) (Mover, error) {
	dest := strings.TrimSpace(cfg.Destination)
	if dest == "" {
		return nil, errors.New("relocate: destination is empty")
	}
	if strings.HasPrefix(dest, "s3://") {
		u, err := NewS3Uploader(S3Config{
			BucketURL:    dest,
			Endpoint:     cfg.S3Endpoint,
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			SessionToken: cfg.S3SessionToken,
			UseSSL:       cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("relocate: init s3 uploader: %w", err)
		}
		return &S3Mover{uploader: u, dest: dest}, nil
	}
	m, err := NewLocalMover(dest)
	if err != nil {
		return nil, err
	}
	return m, nil
}
