package console

import (
	"sync"
	"time"
)

// SearchDebounceDelay пауза после последнего нажатия перед запросом
const SearchDebounceDelay = 500 * time.Millisecond

// Debouncer сводит серию быстрых вызовов к одному: выполняется только
// функция последнего вызова, после паузы delay.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer создает debouncer с указанной паузой
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call планирует выполнение fn, отменяя ранее запланированный вызов
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop отменяет запланированный вызов, если он есть
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
