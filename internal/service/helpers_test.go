package service

import (
	"sync"
	"testing"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
	"github.com/cwrk-planet/booking-service/internal/inmem"
)

// captureNotifier собирает события доступности для проверок.
type captureNotifier struct {
	mu       sync.Mutex
	created  []domain.Room
	updated  []domain.Room
	deleted  []int64
	reserved []domain.Reservation
	released []domain.Room
}

func (n *captureNotifier) NotifyRoomCreated(room domain.Room) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, room)
}

func (n *captureNotifier) NotifyRoomUpdated(room domain.Room) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updated = append(n.updated, room)
}

func (n *captureNotifier) NotifyRoomDeleted(id int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deleted = append(n.deleted, id)
}

func (n *captureNotifier) NotifyReserved(_ domain.Room, res domain.Reservation) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.reserved = append(n.reserved, res)
}

func (n *captureNotifier) NotifyReleased(rooms []domain.Room) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.released = append(n.released, rooms...)
}

type env struct {
	rooms        *RoomService
	reservations *ReservationService
	notifier     *captureNotifier

	now time.Time
}

// фиксированный момент для детерминированных окон
var testNow = time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)

func newEnv(t *testing.T) *env {
	t.Helper()

	store := inmem.NewStore()
	roomRepo := inmem.NewRoomRepository(store)
	reservationRepo := inmem.NewReservationRepository(store)
	notifier := &captureNotifier{}

	e := &env{
		rooms:        NewRoomService(roomRepo, notifier),
		reservations: NewReservationService(reservationRepo, roomRepo, notifier),
		notifier:     notifier,
		now:          testNow,
	}
	e.reservations.SetClock(func() time.Time { return e.now })
	return e
}

// окно в часах от полуночи дня testNow
func hours(start, end int) domain.Window {
	day := time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC)
	return domain.Window{
		Start: day.Add(time.Duration(start) * time.Hour),
		End:   day.Add(time.Duration(end) * time.Hour),
	}
}
