package services

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
	"velvetbite_server/lib"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
)

// BlobService stores uploaded product images on local disk. Filenames embed a
// millisecond timestamp and a random component so concurrent uploads of the
// same original name never collide.
type BlobService struct {
	logger *gecho.Logger
	dir    string
}

func NewBlobService(logger *gecho.Logger, cfg *structs.Config) *BlobService {
	return &BlobService{
		logger: logger,
		dir:    cfg.Upload.Dir,
	}
}

// EnsureDir creates the upload directory if it does not exist.
func (bs *BlobService) EnsureDir() error {
	return os.MkdirAll(bs.dir, 0o755)
}

// Save writes the blob to disk under a generated filename and returns the
// stored filename plus its public URL.
func (bs *BlobService) Save(src io.Reader, originalName string) (filename, url string, err error) {
	if err := bs.EnsureDir(); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	filename = generateBlobName(originalName)
	dst, err := os.Create(filepath.Join(bs.dir, filename))
	if err != nil {
		return "", "", fmt.Errorf("failed to create blob file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		// Half-written blob is useless; remove it.
		os.Remove(filepath.Join(bs.dir, filename))
		return "", "", fmt.Errorf("failed to write blob: %w", err)
	}

	return filename, bs.URLFor(filename), nil
}

// Delete removes a stored blob. A blob that is already gone is not an error.
func (bs *BlobService) Delete(filename string) error {
	if filename == "" {
		return nil
	}

	err := os.Remove(filepath.Join(bs.dir, filepath.Base(filename)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete blob %s: %w", filename, err)
	}
	return nil
}

// DeleteAll removes the given blobs best-effort, logging failures instead of
// aborting. Row state is authoritative; a leaked file only wastes disk.
func (bs *BlobService) DeleteAll(filenames []string) {
	for _, filename := range filenames {
		if err := bs.Delete(filename); err != nil {
			bs.logger.Warn("Failed to delete blob", gecho.Field("filename", filename), gecho.Field("error", err))
		}
	}
}

// URLFor derives the public URL for a stored filename.
func (bs *BlobService) URLFor(filename string) string {
	return path.Join("/", lib.UploadURLPrefix, filename)
}

var blobNameChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// generateBlobName builds "<millis>-<random>-<sanitized original>".
func generateBlobName(originalName string) string {
	src := rand.NewSource(time.Now().UnixNano())
	r := rand.New(src)

	random := make([]byte, 9)
	for i := range random {
		random[i] = blobNameChars[r.Intn(len(blobNameChars))]
	}

	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), string(random), sanitizeBlobName(originalName))
}

// sanitizeBlobName strips path components and characters that are unsafe in
// filenames or URLs.
func sanitizeBlobName(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)

	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
