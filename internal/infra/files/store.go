// Package files сохраняет загруженные изображения подкастеров на диск.
// Имена файлов генерируются через UUID, для списков дополнительно
// создается уменьшенная копия.
package files

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/chapternet/CN-PodcastService/internal/domain"
)

// Расширения, которые принимаем от админки: только jpeg и png
var allowedExtensions = map[string]string{
	".jpg":  "jpg",
	".jpeg": "jpg",
	".png":  "png",
}

// ImageStore хранилище изображений на локальном диске
type ImageStore struct {
	dir            string
	maxSizeBytes   int64
	thumbnailWidth int
}

// NewImageStore создает хранилище и каталоги под оригиналы и миниатюры.
// При нулевом maxSizeMB действует лимит по умолчанию.
func NewImageStore(dir string, maxSizeMB, thumbnailWidth int) (*ImageStore, error) {
	for _, sub := range []string{"", "thumbs"} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("%w: create directory %q: %v", ErrSaveFailed, filepath.Join(dir, sub), err)
		}
	}

	maxSizeBytes := int64(maxSizeMB) << 20
	if maxSizeBytes <= 0 {
		maxSizeBytes = domain.MaxImageSizeBytes
	}

	return &ImageStore{
		dir:            dir,
		maxSizeBytes:   maxSizeBytes,
		thumbnailWidth: thumbnailWidth,
	}, nil
}

// Save валидирует и сохраняет загруженное изображение.
// Возвращает относительный путь сохраненного оригинала; миниатюра
// кладется рядом в thumbs/ с тем же именем.
func (s *ImageStore) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxSizeBytes {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrFileTooLarge, header.Size, s.maxSizeBytes)
	}

	ext, ok := allowedExtensions[strings.ToLower(filepath.Ext(header.Filename))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(header.Filename))
	}

	// Декодирование заодно проверяет, что содержимое действительно картинка
	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrUnsupportedFormat, err)
	}

	name := fmt.Sprintf("%s.%s", uuid.NewString(), ext)
	originalPath := filepath.Join(s.dir, name)

	if err := imaging.Save(img, originalPath); err != nil {
		return "", fmt.Errorf("%w: save original: %v", ErrSaveFailed, err)
	}

	thumb := imaging.Resize(img, s.thumbnailWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, filepath.Join(s.dir, "thumbs", name)); err != nil {
		// Миниатюра вторична: откатываем оригинал, чтобы не оставлять половину
		_ = os.Remove(originalPath)
		return "", fmt.Errorf("%w: save thumbnail: %v", ErrSaveFailed, err)
	}

	return name, nil
}

// Remove удаляет оригинал и миниатюру; отсутствие файлов не считается ошибкой
func (s *ImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}

	// Не даем выйти за пределы каталога хранилища
	base := filepath.Base(name)

	for _, p := range []string{filepath.Join(s.dir, base), filepath.Join(s.dir, "thumbs", base)} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("%w: remove %q: %v", ErrSaveFailed, p, err)
		}
	}

	return nil
}
