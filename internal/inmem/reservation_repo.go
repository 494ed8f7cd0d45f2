package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
)

type ReservationRepository struct {
	s *Store
}

func NewReservationRepository(s *Store) *ReservationRepository {
	return &ReservationRepository{s: s}
}

func (r *ReservationRepository) Reserve(_ context.Context, roomID int64, w domain.Window, nowAt time.Time) (*domain.Room, *domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rm, ok := r.s.rooms[roomID]
	if !ok {
		return nil, nil, domain.ErrRecordNotFound.WithDetail("room %d not found", roomID)
	}
	if rm.Status == domain.StatusUnavailable {
		return nil, nil, domain.ErrRoomNotAvailable.WithDetail("room %d is %s", rm.ID, rm.Status)
	}
	for _, res := range r.s.reservations {
		if res.RoomID == roomID && res.Status == domain.ReservationActive && w.Overlaps(res.Window()) {
			return nil, nil, domain.ErrDateNotAvailable.WithDetail(
				"room %d is already reserved within [%s, %s)", roomID, w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
		}
	}

	r.s.nextResID++
	res := &domain.Reservation{
		ID:        r.s.nextResID,
		RoomID:    roomID,
		Start:     w.Start,
		End:       w.End,
		Status:    domain.ReservationActive,
		CreatedAt: now(),
	}
	r.s.reservations[res.ID] = res

	if w.Contains(nowAt) {
		rm.Occupy(res)
	}
	return copyRoom(rm), copyReservation(res), nil
}

func (r *ReservationRepository) Get(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, domain.ErrRecordNotFound.WithDetail("reservation %d not found", id)
	}
	return copyReservation(res), nil
}

func (r *ReservationRepository) ListByRoom(_ context.Context, roomID int64) ([]domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []domain.Reservation
	for _, res := range r.s.reservations {
		if res.RoomID == roomID {
			list = append(list, *copyReservation(res))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Start.Before(list[j].Start) })
	return list, nil
}

func (r *ReservationRepository) Cancel(_ context.Context, id int64, _ time.Time) (*domain.Reservation, *domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, nil, domain.ErrRecordNotFound.WithDetail("reservation %d not found", id)
	}
	if res.Status == domain.ReservationCancelled {
		return nil, nil, domain.ErrInvalidRequestData.WithDetail("reservation %d is already cancelled", id)
	}
	res.Status = domain.ReservationCancelled

	var released *domain.Room
	if rm, ok := r.s.rooms[res.RoomID]; ok && rm.ReservationID != nil && *rm.ReservationID == id {
		rm.Release()
		released = copyRoom(rm)
	}
	return copyReservation(res), released, nil
}

func (r *ReservationRepository) SyncOccupancy(_ context.Context, nowAt time.Time) ([]domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var changed []domain.Room

	for _, rm := range r.s.rooms {
		if rm.ReservationID == nil {
			continue
		}
		res, ok := r.s.reservations[*rm.ReservationID]
		if !ok || res.Status == domain.ReservationCancelled || !res.End.After(nowAt) {
			rm.Release()
			changed = append(changed, *copyRoom(rm))
		}
	}

	for _, rm := range r.s.rooms {
		if rm.ReservationID != nil || rm.Status != domain.StatusAvailable {
			continue
		}
		for _, res := range r.s.reservations {
			if res.RoomID == rm.ID && res.Status == domain.ReservationActive && res.Window().Contains(nowAt) {
				rm.Occupy(res)
				changed = append(changed, *copyRoom(rm))
				break
			}
		}
	}

	sort.Slice(changed, func(i, j int) bool { return changed[i].ID < changed[j].ID })
	return changed, nil
}
