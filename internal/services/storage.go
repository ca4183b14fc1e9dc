package services

import (
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inoxmetalart/backend/internal/apierr"
	"github.com/inoxmetalart/backend/internal/logger"
)

// Upload directories, one per owning entity, all under the storage root.
const (
	DirProducts       = "products"
	DirGallery        = "gallery"
	DirProjects       = "projects"
	DirProjectGallery = "projects/gallery"
	DirMaterials      = "materials"
	DirApplications   = "applications"
	DirVideos         = "videos"
)

var MaterialExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".jpg": true, ".jpeg": true, ".png": true, ".zip": true, ".rar": true,
}

// Applications additionally accept CAD drawings.
var ApplicationExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".jpg": true, ".jpeg": true, ".png": true, ".zip": true, ".rar": true,
	".dwg": true, ".dxf": true,
}

const (
	MaxProductImageBytes = 10 << 20
	MaxProductVideoBytes = 100 << 20
)

// UploadRules constrain a single upload: either an extension allow-set or a
// declared content-type prefix, plus an optional size cap.
type UploadRules struct {
	AllowedExtensions map[string]bool
	ContentTypePrefix string
	MaxBytes          int64
}

// SavedFile describes a persisted upload.
type SavedFile struct {
	Path      string `json:"file_path"`
	Filename  string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	SizeHuman string `json:"file_size"`
	FileType  string `json:"file_type"`
}

type StorageService struct {
	log  *logger.Logger
	root string
}

func NewStorageService(log *logger.Logger, root string) *StorageService {
	return &StorageService{log: log.With("service", "StorageService"), root: root}
}

// Init creates the upload directory tree. Called once from main, not as an
// import side effect.
func (s *StorageService) Init() error {
	for _, dir := range []string{
		DirProducts, DirGallery, DirProjects, DirProjectGallery,
		DirMaterials, DirApplications, DirVideos,
	} {
		if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
			return fmt.Errorf("creating upload dir %s: %w", dir, err)
		}
	}
	return nil
}

func (s *StorageService) Root() string { return s.root }

// SaveUpload validates the incoming file against the rules and writes it
// under dir. The write is staged to a temp file and renamed into place, so
// a failed write never leaves a partial file at the final path. The
// returned path is the same relative path the file is served under.
func (s *StorageService) SaveUpload(dir string, fh *multipart.FileHeader, ownerID uint, rules UploadRules) (*SavedFile, error) {
	if fh == nil || fh.Filename == "" {
		return nil, apierr.Validation("no file provided")
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if rules.AllowedExtensions != nil && !rules.AllowedExtensions[ext] {
		return nil, apierr.UnsupportedFileType(ext)
	}
	if rules.ContentTypePrefix != "" {
		if ct := fh.Header.Get("Content-Type"); !strings.HasPrefix(ct, rules.ContentTypePrefix) {
			return nil, apierr.Validation("file must be of type %s*", rules.ContentTypePrefix)
		}
	}
	if rules.MaxBytes > 0 && fh.Size > rules.MaxBytes {
		return nil, apierr.FileTooLarge(rules.MaxBytes)
	}

	filename := uploadFilename(fh.Filename, ownerID)
	relPath := filepath.ToSlash(filepath.Join(s.root, dir, filename))

	src, err := fh.Open()
	if err != nil {
		return nil, apierr.StorageWrite(err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Join(s.root, dir), ".upload-*")
	if err != nil {
		return nil, apierr.StorageWrite(err)
	}
	written, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, apierr.StorageWrite(err)
	}
	if err := os.Rename(tmp.Name(), filepath.FromSlash(relPath)); err != nil {
		_ = os.Remove(tmp.Name())
		return nil, apierr.StorageWrite(err)
	}

	return &SavedFile{
		Path:      relPath,
		Filename:  filename,
		SizeBytes: written,
		SizeHuman: FormatFileSize(written),
		FileType:  FileTypeFromExt(ext),
	}, nil
}

// Remove deletes a stored file. Failures are logged, never propagated: a
// missing or stuck file must not block the owning row's mutation.
func (s *StorageService) Remove(relPath string) {
	if relPath == "" {
		return
	}
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if !strings.HasPrefix(clean, filepath.Clean(s.root)+string(os.PathSeparator)) {
		s.log.Warn("Refusing to delete file outside the upload root", "path", relPath)
		return
	}
	if err := os.Remove(clean); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to delete file", "path", relPath, "error", err)
	}
}

// RemoveAll deletes each path in the list, best effort.
func (s *StorageService) RemoveAll(relPaths []string) {
	for _, p := range relPaths {
		s.Remove(p)
	}
}

// uploadFilename builds a collision-resistant name from the upload time,
// the owning row id when known, and the original name with spaces
// normalized to underscores.
func uploadFilename(original string, ownerID uint) string {
	base := strings.ReplaceAll(filepath.Base(original), " ", "_")
	stamp := time.Now().Format("20060102_150405.000000000")
	stamp = strings.ReplaceAll(stamp, ".", "_")
	if ownerID > 0 {
		return fmt.Sprintf("%s_%d_%s", stamp, ownerID, base)
	}
	return fmt.Sprintf("%s_%s", stamp, base)
}

// FormatFileSize renders a byte count in human units, matching the format
// stored by earlier revisions ("1.5 MB").
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes == 0 {
		return "0 Bytes"
	}
	names := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(sizeBytes)) / math.Log(1024)))
	if i >= len(names) {
		i = len(names) - 1
	}
	value := float64(sizeBytes) / math.Pow(1024, float64(i))
	return fmt.Sprintf("%s %s", trimZeros(fmt.Sprintf("%.2f", value)), names[i])
}

func trimZeros(s string) string {
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// FileTypeFromExt reports the stored file_type for an extension: the
// extension without its dot, uppercased.
func FileTypeFromExt(ext string) string {
	return strings.ToUpper(strings.TrimPrefix(ext, "."))
}
