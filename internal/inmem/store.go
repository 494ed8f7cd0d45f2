package inmem

import (
	"sync"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
)

// Store — общее состояние для in-memory репозиториев.
// Один мьютекс на всё хранилище: каждая операция атомарна, как транзакция в pg.
type Store struct {
	mu           sync.Mutex
	rooms        map[int64]*domain.Room
	reservations map[int64]*domain.Reservation
	nextRoomID   int64
	nextResID    int64
}

func NewStore() *Store {
	return &Store{
		rooms:        make(map[int64]*domain.Room),
		reservations: make(map[int64]*domain.Reservation),
	}
}

func (s *Store) roomByName(name string) *domain.Room {
	for _, rm := range s.rooms {
		if rm.Name == name {
			return rm
		}
	}
	return nil
}

func copyRoom(rm *domain.Room) *domain.Room {
	clone := *rm
	if rm.ReservationID != nil {
		id := *rm.ReservationID
		clone.ReservationID = &id
	}
	return &clone
}

func copyReservation(res *domain.Reservation) *domain.Reservation {
	clone := *res
	return &clone
}

func now() time.Time {
	return time.Now().UTC()
}
