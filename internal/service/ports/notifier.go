package ports

import "github.com/cwrk-planet/booking-service/internal/domain"

// AvailabilityNotifier — best-effort рассылка событий доступности (WS-табло).
type AvailabilityNotifier interface {
	NotifyRoomCreated(room domain.Room)
	NotifyRoomUpdated(room domain.Room)
	NotifyRoomDeleted(id int64)
	NotifyReserved(room domain.Room, res domain.Reservation)
	NotifyReleased(rooms []domain.Room)
}
