package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrEmptySelection возвращается при пакетном удалении без выбранных слотов
	ErrEmptySelection = errors.New("no slots selected")

	// ErrCapacityBelowBooked возвращается при попытке установить вместимость
	// меньше числа существующих бронирований
	ErrCapacityBelowBooked = errors.New("capacity is below current booked count")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
