package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cwrk-planet/booking-service/internal/domain"
	"github.com/cwrk-planet/booking-service/internal/service/ports"
)

type RoomService struct {
	roomRepo ports.RoomRepo
	notifier ports.AvailabilityNotifier
}

func NewRoomService(roomRepo ports.RoomRepo, notifier ports.AvailabilityNotifier) *RoomService {
	return &RoomService{roomRepo: roomRepo, notifier: notifier}
}

// Register создаёт комнату в статусе AVAILABLE без брони.
func (s *RoomService) Register(ctx context.Context, name string, capacity int) (*domain.Room, error) {
	if err := domain.ValidateRoomInput(name, capacity); err != nil {
		return nil, err
	}

	room := &domain.Room{
		Name:     name,
		Capacity: capacity,
		Status:   domain.StatusAvailable,
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("roomRepo.Create: %w", err)
	}

	slog.Info("room registered", "room_id", room.ID, "name", room.Name)
	s.notifier.NotifyRoomCreated(*room)
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.roomRepo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("roomRepo.Get: %w", err)
	}
	return room, nil
}

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("roomRepo.List: %w", err)
	}
	return rooms, nil
}

// Update меняет имя/вместимость и административный статус; проверка смены
// статуса выполняется под блокировкой строки в репозитории.
func (s *RoomService) Update(ctx context.Context, id int64, name string, capacity int, status domain.RoomStatus) (*domain.Room, error) {
	if err := domain.ValidateRoomInput(name, capacity); err != nil {
		return nil, err
	}
	if status == "" {
		// статус не передан — оставляем текущий
		cur, err := s.roomRepo.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("roomRepo.Get: %w", err)
		}
		status = cur.Status
	}
	if _, ok := domain.ParseRoomStatus(string(status)); !ok {
		return nil, domain.ErrInvalidRequestData.WithDetail("unknown room status %q", status)
	}

	room, err := s.roomRepo.Update(ctx, id, name, capacity, status)
	if err != nil {
		return nil, fmt.Errorf("roomRepo.Update: %w", err)
	}

	slog.Info("room updated", "room_id", room.ID, "status", room.Status)
	s.notifier.NotifyRoomUpdated(*room)
	return room, nil
}

// Delete удаляет комнату без зависимых броней (прошлых или будущих).
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("roomRepo.Delete: %w", err)
	}

	slog.Info("room deleted", "room_id", id)
	s.notifier.NotifyRoomDeleted(id)
	return nil
}
