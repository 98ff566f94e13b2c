package console

import (
	"errors"
	"fmt"
)

var (
	// ErrBusy возвращается при попытке запустить операцию, пока
	// предыдущая еще выполняется
	ErrBusy = errors.New("console: operation already in progress")

	// ErrGeneratorUsed возвращается при повторном использовании генератора:
	// на каждую отправку создается новый экземпляр
	ErrGeneratorUsed = errors.New("console: slot generator already used")

	// ErrEmptySelection возвращается при пакетном удалении без выбранных слотов
	ErrEmptySelection = errors.New("console: no slots selected")
)

// FieldError ошибка локальной валидации с именем поля
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("console: field %q: %s", e.Field, e.Reason)
}
