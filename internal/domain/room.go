package domain

import "time"

type RoomStatus string

const (
	StatusAvailable   RoomStatus = "AVAILABLE"
	StatusReserved    RoomStatus = "RESERVED"
	StatusUnavailable RoomStatus = "UNAVAILABLE"
)

const MaxRoomNameLen = 20

type Room struct {
	ID            int64      `db:"id"`
	Name          string     `db:"name"`
	Capacity      int        `db:"capacity"`
	Status        RoomStatus `db:"status"`
	ReservationID *int64     `db:"reservation_id"`
	CreatedAt     time.Time  `db:"created_at"`
}

func ParseRoomStatus(s string) (RoomStatus, bool) {
	switch RoomStatus(s) {
	case StatusAvailable, StatusReserved, StatusUnavailable:
		return RoomStatus(s), true
	}
	return "", false
}

// Occupied — комната закреплена за текущей бронью.
func (r *Room) Occupied() bool {
	return r.ReservationID != nil
}

// ValidateRoomInput проверяет имя и вместимость до обращения к хранилищу.
func ValidateRoomInput(name string, capacity int) error {
	if name == "" {
		return ErrInvalidRequestData.WithDetail("room name is required")
	}
	if len(name) > MaxRoomNameLen {
		return ErrInvalidRequestData.WithDetail("room name exceeds %d characters", MaxRoomNameLen)
	}
	if capacity <= 0 {
		return ErrInvalidRequestData.WithDetail("capacity must be positive")
	}
	return nil
}

// CanSetStatus — правила административного перевода статуса через updateRoom.
// RESERVED назначается только при бронировании,
// AVAILABLE <-> UNAVAILABLE запрещён пока комната занята.
func (r *Room) CanSetStatus(to RoomStatus) error {
	if to == r.Status {
		return nil
	}
	if to == StatusReserved {
		return ErrInvalidRequestData.WithDetail("status %s cannot be set directly", StatusReserved)
	}
	if r.Occupied() || r.Status == StatusReserved {
		return ErrRoomNotAvailable.WithDetail("room %d is occupied, release it first", r.ID)
	}
	return nil
}

// Occupy переводит комнату в RESERVED под бронь res.
func (r *Room) Occupy(res *Reservation) {
	id := res.ID
	r.Status = StatusReserved
	r.ReservationID = &id
}

// Release очищает ссылку на бронь и возвращает комнату в AVAILABLE.
// UNAVAILABLE не трогаем: административный статус переживает брони.
func (r *Room) Release() {
	r.ReservationID = nil
	if r.Status == StatusReserved {
		r.Status = StatusAvailable
	}
}
