package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
	"github.com/cwrk-planet/booking-service/internal/service/ports"
)

type ReservationService struct {
	reservationRepo ports.ReservationRepo
	roomRepo        ports.RoomRepo
	notifier        ports.AvailabilityNotifier

	now func() time.Time
}

func NewReservationService(reservationRepo ports.ReservationRepo, roomRepo ports.RoomRepo, notifier ports.AvailabilityNotifier) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

// SetClock — подмена времени в тестах.
func (s *ReservationService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Reserve принимает бронь комнаты на окно [start, end).
// Если окно уже наступило, комната сразу переводится в RESERVED;
// будущая бронь только регистрируется, текущий статус не меняется.
func (s *ReservationService) Reserve(ctx context.Context, roomID int64, w domain.Window) (*domain.Room, *domain.Reservation, error) {
	if err := w.Validate(); err != nil {
		return nil, nil, err
	}

	room, res, err := s.reservationRepo.Reserve(ctx, roomID, w, s.now().UTC())
	if err != nil {
		return nil, nil, fmt.Errorf("reservationRepo.Reserve: %w", err)
	}

	slog.Info("reservation accepted",
		"reservation_id", res.ID,
		"room_id", room.ID,
		"start", res.Start,
		"end", res.End,
		"room_status", room.Status)
	s.notifier.NotifyReserved(*room, *res)
	return room, res, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := s.reservationRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.Get: %w", err)
	}
	return res, nil
}

func (s *ReservationService) ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error) {
	if _, err := s.roomRepo.Get(ctx, roomID); err != nil {
		return nil, fmt.Errorf("roomRepo.Get: %w", err)
	}

	list, err := s.reservationRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.ListByRoom: %w", err)
	}
	return list, nil
}

// Cancel — явная отмена брони; занятая комната при этом освобождается.
func (s *ReservationService) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, released, err := s.reservationRepo.Cancel(ctx, id, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.Cancel: %w", err)
	}

	slog.Info("reservation cancelled", "reservation_id", res.ID, "room_id", res.RoomID)
	if released != nil {
		s.notifier.NotifyReleased([]domain.Room{*released})
	}
	return res, nil
}

// SyncOccupancy выравнивает статусы комнат с текущим моментом:
// снимает истёкшие занятости и закрепляет наступившие окна.
func (s *ReservationService) SyncOccupancy(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.reservationRepo.SyncOccupancy(ctx, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("reservationRepo.SyncOccupancy: %w", err)
	}

	if len(rooms) > 0 {
		slog.Info("occupancy synced", "rooms", len(rooms))
		s.notifier.NotifyReleased(rooms)
	}
	return rooms, nil
}
