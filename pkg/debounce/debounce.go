// Package debounce реализует задержку со сбросом: доставляется только
// последнее значение, переданное за окно задержки.
package debounce

import (
	"sync"
	"time"
)

// Debouncer доставляет последнее значение, переданное в Call, когда новых
// вызовов не было в течение задержки.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	value   T
	pending bool
}

// New создает Debouncer, вызывающий fn после delay без новых вызовов.
func New[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Call запоминает v и перезапускает окно задержки.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.value = v
	d.pending = true
	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// Таймер устарел после нового Call, Cancel или Flush.
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.mu.Unlock()

	d.fn(v)
}

// Cancel отбрасывает ожидающее значение без доставки.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
}

// Flush немедленно доставляет ожидающее значение, если оно есть.
// Возвращает true, если значение было доставлено.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	v := d.value
	d.stopLocked()
	d.mu.Unlock()

	d.fn(v)
	return true
}

// Pending сообщает, ожидает ли значение доставки.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer[T]) stopLocked() {
	d.gen++
	d.pending = false
	var zero T
	d.value = zero
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
