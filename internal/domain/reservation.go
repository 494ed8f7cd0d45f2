package domain

import "time"

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "ACTIVE"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

type Reservation struct {
	ID        int64             `db:"id"`
	RoomID    int64             `db:"room_id"`
	Start     time.Time         `db:"start_time"`
	End       time.Time         `db:"end_time"`
	Status    ReservationStatus `db:"status"`
	CreatedAt time.Time         `db:"created_at"`
}

func (r *Reservation) Window() Window {
	return Window{Start: r.Start, End: r.End}
}

// Window — полуоткрытый интервал [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return ErrInvalidRequestData.WithDetail("start and end are required")
	}
	if !w.Start.Before(w.End) {
		return ErrInvalidRequestData.WithDetail("start must be before end")
	}
	return nil
}

// Overlaps — пересечение полуоткрытых интервалов; смежные окна не конфликтуют.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Contains — момент t внутри окна.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}
