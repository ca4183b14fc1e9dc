package services

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inoxmetalart/backend/internal/apierr"
	"github.com/inoxmetalart/backend/internal/logger"
)

func testStorage(t *testing.T) *StorageService {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	s := NewStorageService(log, t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	return s
}

// testFileHeader builds a parsed multipart header the way gin hands one to
// a handler.
func testFileHeader(t *testing.T, field, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="` + field + `"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	})
	if err != nil {
		t.Fatalf("creating part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("writing part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("closing writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, fh, err := req.FormFile(field)
	if err != nil {
		t.Fatalf("parsing form: %v", err)
	}
	return fh
}

func TestSaveUploadWritesFile(t *testing.T) {
	s := testStorage(t)
	fh := testFileHeader(t, "file", "каталог отделок.pdf", "application/pdf", []byte("%PDF-1.4"))

	saved, err := s.SaveUpload(DirMaterials, fh, 7, UploadRules{AllowedExtensions: MaterialExtensions})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.Contains(saved.Filename, "_7_") {
		t.Fatalf("filename %q should carry the owner id", saved.Filename)
	}
	if strings.Contains(saved.Filename, " ") {
		t.Fatalf("filename %q should have spaces normalized", saved.Filename)
	}
	if saved.FileType != "PDF" {
		t.Fatalf("file type = %q, want PDF", saved.FileType)
	}
	data, err := os.ReadFile(filepath.FromSlash(saved.Path))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Fatalf("stored content mismatch: %q", data)
	}
}

func TestSaveUploadRejectsExtension(t *testing.T) {
	s := testStorage(t)
	fh := testFileHeader(t, "file", "malware.exe", "application/octet-stream", []byte("MZ"))

	_, err := s.SaveUpload(DirMaterials, fh, 0, UploadRules{AllowedExtensions: MaterialExtensions})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeUnsupportedFileType {
		t.Fatalf("expected unsupported_file_type, got %v", err)
	}
}

func TestSaveUploadRejectsContentType(t *testing.T) {
	s := testStorage(t)
	fh := testFileHeader(t, "file", "photo.bin", "application/octet-stream", []byte("xx"))

	_, err := s.SaveUpload(DirGallery, fh, 0, UploadRules{ContentTypePrefix: "image/"})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeValidationFailed {
		t.Fatalf("expected validation_failed, got %v", err)
	}
}

func TestSaveUploadRejectsOversize(t *testing.T) {
	s := testStorage(t)
	fh := testFileHeader(t, "file", "big.png", "image/png", bytes.Repeat([]byte("a"), 64))

	_, err := s.SaveUpload(DirGallery, fh, 0, UploadRules{ContentTypePrefix: "image/", MaxBytes: 16})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Code != apierr.CodeFileTooLarge {
		t.Fatalf("expected file_too_large, got %v", err)
	}
}

func TestRemoveRefusesOutsideRoot(t *testing.T) {
	s := testStorage(t)

	outside := filepath.Join(t.TempDir(), "keep.txt")
	if err := os.WriteFile(outside, []byte("keep"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	s.Remove(outside)
	if _, err := os.Stat(outside); err != nil {
		t.Fatal("file outside the upload root must not be deleted")
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2 * 1024 * 1024, "2 MB"},
		{3 * 1024 * 1024 * 1024, "3 GB"},
	}
	for _, tc := range cases {
		if got := FormatFileSize(tc.bytes); got != tc.want {
			t.Fatalf("FormatFileSize(%d) = %q, want %q", tc.bytes, got, tc.want)
		}
	}
}
