package http

import (
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
)

type RoomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status,omitempty"`
}

type RoomItem struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	Status        string    `json:"status"`
	ReservationID *int64    `json:"reservation_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type RoomsListResponse struct {
	Items []RoomItem `json:"items"`
}

type ReserveRequest struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ReservationItem struct {
	ID        int64     `json:"id"`
	RoomID    int64     `json:"room_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ReservationsListResponse struct {
	Items []ReservationItem `json:"items"`
}

type ReserveResponse struct {
	Room        RoomItem        `json:"room"`
	Reservation ReservationItem `json:"reservation"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func toRoomItem(rm domain.Room) RoomItem {
	return RoomItem{
		ID:            rm.ID,
		Name:          rm.Name,
		Capacity:      rm.Capacity,
		Status:        string(rm.Status),
		ReservationID: rm.ReservationID,
		CreatedAt:     rm.CreatedAt,
	}
}

func toReservationItem(res domain.Reservation) ReservationItem {
	return ReservationItem{
		ID:        res.ID,
		RoomID:    res.RoomID,
		Start:     res.Start,
		End:       res.End,
		Status:    string(res.Status),
		CreatedAt: res.CreatedAt,
	}
}
