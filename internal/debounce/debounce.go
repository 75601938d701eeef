// Package debounce откладывает вызов до паузы во входных событиях.
package debounce

import (
	"sync"
	"time"
)

// Debouncer вызывает последнюю переданную функцию через delay после последнего Trigger.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
}

// New создаёт дебаунсер. delay <= 0 означает немедленный вызов.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger откладывает fn; предыдущий отложенный вызов отменяется.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	if d.delay <= 0 {
		d.timer = nil
		go fn()
		return
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop отменяет отложенный вызов и игнорирует дальнейшие Trigger.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
