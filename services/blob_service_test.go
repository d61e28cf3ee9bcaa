package services

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"velvetbite_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlobService(t *testing.T) *BlobService {
	t.Helper()
	cfg := &structs.Config{
		Upload: &structs.UploadConfig{Dir: t.TempDir()},
	}
	return NewBlobService(gecho.NewDefaultLogger(), cfg)
}

func TestBlobSaveAndDelete(t *testing.T) {
	bs := testBlobService(t)

	filename, url, err := bs.Save(strings.NewReader("fake image bytes"), "cover.jpg")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{13}-[a-z0-9]{9}-cover\.jpg$`), filename)
	assert.Equal(t, "/uploads/Products/"+filename, url)

	data, err := os.ReadFile(filepath.Join(bs.dir, filename))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	require.NoError(t, bs.Delete(filename))
	_, err = os.Stat(filepath.Join(bs.dir, filename))
	assert.True(t, os.IsNotExist(err))
}

func TestBlobDeleteMissingIsNoError(t *testing.T) {
	bs := testBlobService(t)
	assert.NoError(t, bs.Delete("never-stored.jpg"))
	assert.NoError(t, bs.Delete(""))
}

func TestBlobDeleteIgnoresPathTraversal(t *testing.T) {
	bs := testBlobService(t)

	outside := filepath.Join(filepath.Dir(bs.dir), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0o644))

	require.NoError(t, bs.Delete("../victim.txt"))
	_, err := os.Stat(outside)
	assert.NoError(t, err, "delete must not escape the upload directory")
}

func TestSanitizeBlobName(t *testing.T) {
	assert.Equal(t, "passwd", sanitizeBlobName("../../etc/passwd"))
	assert.Equal(t, "my_photo_1.jpg", sanitizeBlobName("my photo 1.jpg"))
	assert.Equal(t, "upload", sanitizeBlobName(""))
}
