package ws

import "time"

// Типы событий табло доступности
const (
	TypeState        = "state"         // снапшот всех комнат при подключении
	TypeRoomCreated  = "room_created"  // зарегистрирована новая комната
	TypeRoomUpdated  = "room_updated"  // изменены данные или статус комнаты
	TypeRoomDeleted  = "room_deleted"  // комната удалена
	TypeRoomReserved = "room_reserved" // принята бронь
	TypeRoomReleased = "room_released" // комната освобождена
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type StatePayload struct {
	Rooms []RoomStateItem `json:"rooms"`
}

type RoomStateItem struct {
	RoomID        int64  `json:"room_id"`
	Name          string `json:"name"`
	Capacity      int    `json:"capacity"`
	Status        string `json:"status"`
	ReservationID *int64 `json:"reservation_id,omitempty"`
}

type RoomEventPayload struct {
	RoomID        int64  `json:"room_id"`
	Name          string `json:"name,omitempty"`
	Status        string `json:"status,omitempty"`
	ReservationID *int64 `json:"reservation_id,omitempty"`
}

type ReservedPayload struct {
	RoomID        int64     `json:"room_id"`
	ReservationID int64     `json:"reservation_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	RoomStatus    string    `json:"room_status"`
}
