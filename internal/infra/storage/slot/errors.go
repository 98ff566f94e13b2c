package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotNotAvailable возвращается, когда слот нельзя забронировать
	// (заполнен, закрыт или деактивирован)
	ErrSlotNotAvailable = errors.New("slot.repository: slot is not available for booking")

	// ErrCapacityBelowBooked возвращается при попытке установить
	// вместимость меньше текущего числа бронирований
	ErrCapacityBelowBooked = errors.New("slot.repository: capacity is below current booked count")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
