package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
)

type occupancySyncer interface {
	SyncOccupancy(ctx context.Context) ([]domain.Room, error)
}

// Scheduler периодически выравнивает занятость комнат: снимает истёкшие
// брони с комнат и закрепляет наступившие окна.
type Scheduler struct {
	reservations occupancySyncer
	interval     time.Duration
}

func New(reservations occupancySyncer, interval time.Duration) *Scheduler {
	return &Scheduler{
		reservations: reservations,
		interval:     interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("occupancy scheduler started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			slog.Info("occupancy scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	rooms, err := s.reservations.SyncOccupancy(ctx)
	if err != nil {
		slog.Error("occupancy sync failed", "err", err)
		return
	}

	for _, rm := range rooms {
		slog.Info("room occupancy changed",
			"room_id", rm.ID,
			"status", rm.Status)
	}
}
