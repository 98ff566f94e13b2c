package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotFull возвращается, когда подтверждение вернуло бы бронирование
	// в заполненный слот
	ErrSlotFull = errors.New("slot has no remaining capacity")

	// ErrInvalidStatus возвращается при неизвестном действии над статусом
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrForbidden возвращается при попытке отменить чужое бронирование
	ErrForbidden = errors.New("booking belongs to another user")

	// ErrCannotCancel возвращается, когда бронирование уже нельзя отменить:
	// оно в терминальном статусе или слот начинается слишком скоро
	ErrCannotCancel = errors.New("booking can no longer be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
