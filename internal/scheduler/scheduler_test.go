package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

type stubSyncer struct {
	calls atomic.Int64
	rooms []domain.Room
	err   error
}

func (s *stubSyncer) SyncOccupancy(context.Context) ([]domain.Room, error) {
	s.calls.Add(1)
	return s.rooms, s.err
}

func TestScheduler_Tick_SyncsOccupancy(t *testing.T) {
	syncer := &stubSyncer{rooms: []domain.Room{{ID: 1, Status: domain.StatusAvailable}}}

	s := New(syncer, 30*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, syncer.calls.Load(), int64(2))
}

func TestScheduler_Tick_HandlesError(t *testing.T) {
	syncer := &stubSyncer{err: errors.New("db error")}

	s := New(syncer, 30*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, syncer.calls.Load(), int64(1))
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	syncer := &stubSyncer{}

	s := New(syncer, time.Second) // интервал длиннее теста

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
		// success
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}
