package files

import "errors"

var (
	// ErrFileTooLarge возвращается, когда файл превышает лимит размера
	ErrFileTooLarge = errors.New("files: file exceeds size limit")

	// ErrUnsupportedFormat возвращается для не-изображений
	ErrUnsupportedFormat = errors.New("files: unsupported image format")

	// ErrSaveFailed возвращается при ошибке записи на диск
	ErrSaveFailed = errors.New("files: failed to save file")
)
