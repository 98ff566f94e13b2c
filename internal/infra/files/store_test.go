package files

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFile оборачивает bytes.Reader до multipart.File
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func pngUpload(t *testing.T) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		img.Set(x, x, color.RGBA{R: 255, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return memFile{bytes.NewReader(buf.Bytes())},
		&multipart.FileHeader{Filename: "host.png", Size: int64(buf.Len())}
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 5, 320)
	require.NoError(t, err)

	for _, name := range []string{"animation.gif", "vector.svg", "notes.txt"} {
		file := memFile{bytes.NewReader([]byte("not checked"))}
		_, err := store.Save(file, &multipart.FileHeader{Filename: name, Size: 10})
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 1, 320)
	require.NoError(t, err)

	file := memFile{bytes.NewReader(nil)}
	_, err = store.Save(file, &multipart.FileHeader{Filename: "host.png", Size: 2 << 20})
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestSaveDefaultsSizeLimitWhenUnset(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 0, 320)
	require.NoError(t, err)

	file, header := pngUpload(t)
	name, err := store.Save(file, header)
	require.NoError(t, err)
	assert.NotEmpty(t, name)
}

func TestSaveAndRemoveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir, 5, 4)
	require.NoError(t, err)

	file, header := pngUpload(t)
	name, err := store.Save(file, header)
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(name))

	_, err = os.Stat(filepath.Join(dir, name))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "thumbs", name))
	require.NoError(t, err)

	require.NoError(t, store.Remove(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "thumbs", name))
	assert.True(t, os.IsNotExist(err))

	// Повторное удаление не считается ошибкой
	require.NoError(t, store.Remove(name))
}
