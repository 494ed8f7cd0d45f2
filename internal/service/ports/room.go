package ports

import (
	"context"

	"github.com/cwrk-planet/booking-service/internal/domain"
)

type RoomRepo interface {
	// Create вставляет комнату; дубликат имени -> domain.ErrDuplicateRoom.
	Create(ctx context.Context, room *domain.Room) error
	Get(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	// Update атомарно проверяет правила смены статуса под блокировкой строки.
	Update(ctx context.Context, id int64, name string, capacity int, status domain.RoomStatus) (*domain.Room, error)
	// Delete отклоняет удаление при любых зависимых бронях -> domain.ErrAssociatedResources.
	Delete(ctx context.Context, id int64) error
}
