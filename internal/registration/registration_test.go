package registration_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playperu/spinwin/internal/prizewheel"
	"github.com/playperu/spinwin/internal/registration"
)

type recorder struct {
	mu  sync.Mutex
	ids []prizewheel.Identifier
	err error
}

func (r *recorder) Register(_ context.Context, id prizewheel.Identifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	return r.err
}

func (r *recorder) got() []prizewheel.Identifier {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]prizewheel.Identifier(nil), r.ids...)
}

func TestFanout(t *testing.T) {
	ok := &recorder{}
	bad := &recorder{err: errors.New("smtp down")}

	err := registration.Fanout{bad, ok}.Register(context.Background(), "a@b.com")
	if err == nil {
		t.Fatal("expected joined error")
	}
	if got := ok.got(); len(got) != 1 || got[0] != "a@b.com" {
		t.Errorf("healthy registrar saw %v", got)
	}
}

func TestDispatcherSwallowsFailure(t *testing.T) {
	rec := &recorder{err: errors.New("boom")}
	d := registration.NewDispatcher(slog.Default(), rec, time.Second)

	d.Dispatch("a@b.com")
	d.Dispatch("c@d.com")
	d.Wait()

	if got := rec.got(); len(got) != 2 {
		t.Errorf("registrations = %v, want 2", got)
	}
}

func TestDispatcherDropsAfterWait(t *testing.T) {
	rec := &recorder{}
	d := registration.NewDispatcher(slog.Default(), rec, time.Second)

	d.Dispatch("a@b.com")
	d.Wait()
	d.Dispatch("c@d.com")
	d.Wait()

	if got := rec.got(); len(got) != 1 || got[0] != "a@b.com" {
		t.Errorf("registrations = %v, want only a@b.com", got)
	}
}

func TestDispatcherNil(t *testing.T) {
	var d *registration.Dispatcher
	d.Dispatch("a@b.com")
	d.Wait()

	registration.NewDispatcher(slog.Default(), nil, 0).Dispatch("a@b.com")
}

func deadRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "localhost:1",
		DialTimeout:  10 * time.Millisecond,
		ReadTimeout:  10 * time.Millisecond,
		WriteTimeout: 10 * time.Millisecond,
		MaxRetries:   -1,
	})
}

func TestRedisStreamUnavailable(t *testing.T) {
	rdb := deadRedis()
	defer rdb.Close()

	err := registration.NewRedisStream(rdb, "").Register(context.Background(), "a@b.com")
	if err == nil {
		t.Fatal("expected error from unreachable redis")
	}
}

func TestOpenRedisBadURL(t *testing.T) {
	if _, err := registration.OpenRedis(context.Background(), "not a url"); err == nil {
		t.Fatal("expected parse error")
	}
}
