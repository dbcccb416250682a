package relocate

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseS3BucketURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		wantErr   bool
		wantBkt   string
		wantPre   string
		errSubstr string
	}{
		{
			name:    "bucket only",
			raw:     "s3://reports",
			wantBkt: "reports",
		},
		{
			name:    "bucket with prefix",
			raw:     "s3://reports/logsheet/daily/",
			wantBkt: "reports",
			wantPre: "logsheet/daily",
		},
		{
			name:      "invalid scheme",
			raw:       "https://reports/logsheet",
			wantErr:   true,
			errSubstr: "s3:// scheme",
		},
		{
			name:      "missing bucket",
			raw:       "s3:///logsheet",
			wantErr:   true,
			errSubstr: "missing bucket",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gotBkt, gotPre, err := parseS3BucketURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
					t.Fatalf("err = %q, want substring %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseS3BucketURL error: %v", err)
			}
			if gotBkt != tt.wantBkt {
				t.Fatalf("bucket = %q, want %q", gotBkt, tt.wantBkt)
			}
			if gotPre != tt.wantPre {
				t.Fatalf("prefix = %q, want %q", gotPre, tt.wantPre)
			}
		})
	}
}

func TestNewS3Uploader_MissingCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewS3Uploader(S3Config{
		BucketURL: "s3://reports/logsheet",
		Endpoint:  "s3.amazonaws.com",
		UseSSL:    true,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"", true, ""},
		{"minio:9000", false, "http://minio:9000"},
		{"s3.amazonaws.com", true, "https://s3.amazonaws.com"},
		{"http://already", true, "http://already"},
	}
	for _, tt := range tests {
		if got := normalizeEndpoint(tt.endpoint, tt.useSSL); got != tt.want {
			t.Errorf("normalizeEndpoint(%q, %v) = %q, want %q", tt.endpoint, tt.useSSL, got, tt.want)
		}
	}
}

func TestS3UploaderObjectURL(t *testing.T) {
	t.Parallel()

	u := &S3Uploader{bucket: "reports", keyPrefix: "logsheet"}
	if got := u.ObjectURL("/tmp/work/log_data.xlsx"); got != "s3://reports/logsheet/log_data.xlsx" {
		t.Fatalf("ObjectURL = %q", got)
	}
}

type fakeUploader struct {
	err      error
	uploaded []string
}

func (f *fakeUploader) UploadFile(_ context.Context, localPath string) error {
	if f.err != nil {
		return f.err
	}
	f.uploaded = append(f.uploaded, localPath)
	return nil
}

func TestS3Mover_RemovesLocalAfterUpload(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "log_data.xlsx")
	if err := os.WriteFile(src, []byte("xlsx"), 0644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	up := &fakeUploader{}
	m := &S3Mover{uploader: up, dest: "s3://reports/logsheet"}
	dst, err := m.Move(context.Background(), src)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if dst != "s3://reports/logsheet/log_data.xlsx" {
		t.Fatalf("dst = %q", dst)
	}
	if len(up.uploaded) != 1 || up.uploaded[0] != src {
		t.Fatalf("uploaded = %v, want [%s]", up.uploaded, src)
	}
	if _, err := os.Stat(src); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("src still present after upload: %v", err)
	}
}

func TestS3Mover_KeepsLocalOnUploadFailure(t *testing.T) {
	t.Parallel()

	src := filepath.Join(t.TempDir(), "log_data.xlsx")
	if err := os.WriteFile(src, []byte("xlsx"), 0644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	m := &S3Mover{uploader: &fakeUploader{err: errors.New("access denied")}, dest: "s3://reports"}
	_, err := m.Move(context.Background(), src)
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("err = %v, want upload failure", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("src removed after failed upload: %v", err)
	}
}

func TestS3Mover_MissingReport(t *testing.T) {
	t.Parallel()

	m := &S3Mover{uploader: &fakeUploader{}, dest: "s3://reports"}
	_, err := m.Move(context.Background(), filepath.Join(t.TempDir(), "log_data.xlsx"))
	if !errors.Is(err, ErrNoReport) {
		t.Fatalf("err = %v, want ErrNoReport", err)
	}
}
