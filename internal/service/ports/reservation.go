package ports

import (
	"context"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
)

type ReservationRepo interface {
	// Reserve — единая транзакция: блокировка комнаты, проверка статуса и
	// пересечения окон, вставка брони, перевод комнаты в RESERVED если окно
	// уже наступило. Конфликты -> domain.ErrRoomNotAvailable / ErrDateNotAvailable.
	Reserve(ctx context.Context, roomID int64, w domain.Window, now time.Time) (*domain.Room, *domain.Reservation, error)
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error)
	// Cancel помечает бронь CANCELLED; если она занимала комнату —
	// возвращает освобождённую комнату, иначе nil.
	Cancel(ctx context.Context, id int64, now time.Time) (*domain.Reservation, *domain.Room, error)
	// SyncOccupancy освобождает комнаты с истёкшими/отменёнными бронями и
	// занимает комнаты, чьё ближайшее окно стало текущим. Возвращает изменённые комнаты.
	SyncOccupancy(ctx context.Context, now time.Time) ([]domain.Room, error)
}
