package inmem

import (
	"context"
	"sort"

	"github.com/cwrk-planet/booking-service/internal/domain"
)

type RoomRepository struct {
	s *Store
}

func NewRoomRepository(s *Store) *RoomRepository {
	return &RoomRepository{s: s}
}

func (r *RoomRepository) Create(_ context.Context, room *domain.Room) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.roomByName(room.Name) != nil {
		return domain.ErrDuplicateRoom.WithDetail("room %q already registered", room.Name)
	}

	r.s.nextRoomID++
	room.ID = r.s.nextRoomID
	room.CreatedAt = now()
	r.s.rooms[room.ID] = copyRoom(room)
	return nil
}

func (r *RoomRepository) Get(_ context.Context, id int64) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rm, ok := r.s.rooms[id]
	if !ok {
		return nil, domain.ErrRecordNotFound.WithDetail("room %d not found", id)
	}
	return copyRoom(rm), nil
}

func (r *RoomRepository) List(_ context.Context) ([]domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rooms := make([]domain.Room, 0, len(r.s.rooms))
	for _, rm := range r.s.rooms {
		rooms = append(rooms, *copyRoom(rm))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms, nil
}

func (r *RoomRepository) Update(_ context.Context, id int64, name string, capacity int, status domain.RoomStatus) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rm, ok := r.s.rooms[id]
	if !ok {
		return nil, domain.ErrRecordNotFound.WithDetail("room %d not found", id)
	}
	if other := r.s.roomByName(name); other != nil && other.ID != id {
		return nil, domain.ErrDuplicateRoom.WithDetail("room %q already registered", name)
	}
	if err := rm.CanSetStatus(status); err != nil {
		return nil, err
	}

	rm.Name = name
	rm.Capacity = capacity
	rm.Status = status
	return copyRoom(rm), nil
}

func (r *RoomRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[id]; !ok {
		return domain.ErrRecordNotFound.WithDetail("room %d not found", id)
	}
	for _, res := range r.s.reservations {
		if res.RoomID == id {
			return domain.ErrAssociatedResources.WithDetail("room %d has dependent reservations", id)
		}
	}

	delete(r.s.rooms, id)
	return nil
}
