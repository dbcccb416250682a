package relocate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// LocalMover moves files into a directory on the local filesystem.
type LocalMover struct {
	dir    string
	rename func(oldpath, newpath string) error
}

// NewLocalMover returns a mover into dir. A leading "~" expands to the home directory.
func NewLocalMover(dir string) (*LocalMover, error) {
	expanded, err := expandPath(dir)
	if err != nil {
		return nil, fmt.Errorf("relocate: %w", err)
	}
	return &LocalMover{dir: expanded, rename: os.Rename}, nil
}

// Destination returns the destination directory.
func (m *LocalMover) Destination() string { return m.dir }

// Move moves src into the destination directory, replacing any file with the same name.
// Moves across filesystems fall back to copy and remove.
func (m *LocalMover) Move(_ context.Context, src string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNoReport, src)
		}
		return "", fmt.Errorf("relocate: stat %s: %w", src, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("relocate: %s is a directory", src)
	}

	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("relocate: create destination %s: %w", m.dir, err)
	}
	dst := filepath.Join(m.dir, filepath.Base(src))

	err = m.rename(src, dst)
	if err == nil {
		return dst, nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return "", fmt.Errorf("relocate: move %s to %s: %w", src, dst, err)
	}

	log.Printf("relocate: %s and %s are on different devices, copying", src, m.dir)
	if err := copyFile(src, dst, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("relocate: copy %s to %s: %w", src, dst, err)
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("relocate: remove %s after copy: %w", src, err)
	}
	return dst, nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
