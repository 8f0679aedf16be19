// Package registration delivers captured identifiers to registration
// collaborators without ever blocking the play flow.
package registration

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/playperu/spinwin/internal/prizewheel"
)

// Fanout registers with every registrar and joins their errors.
type Fanout []prizewheel.Registrar

func (f Fanout) Register(ctx context.Context, id prizewheel.Identifier) error {
	var errs []error
	for _, r := range f {
		if err := r.Register(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dispatcher runs registrations in the background. Failures are logged and
// otherwise ignored.
type Dispatcher struct {
	registrar prizewheel.Registrar
	logger    *slog.Logger
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(logger *slog.Logger, registrar prizewheel.Registrar, timeout time.Duration) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{registrar: registrar, logger: logger, timeout: timeout}
}

// Dispatch starts registering id and returns immediately. Once Wait has
// been called new identifiers are dropped.
func (d *Dispatcher) Dispatch(id prizewheel.Identifier) {
	if d == nil || d.registrar == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("registration dropped, dispatcher stopped")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.registrar.Register(ctx, id); err != nil {
			d.logger.Warn("registration failed", "error", err)
			return
		}
		d.logger.Debug("identifier registered")
	}()
}

// Wait blocks until in-flight registrations finish. Used on shutdown.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
