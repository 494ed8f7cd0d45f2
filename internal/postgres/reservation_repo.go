package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Reserve — защищён от гонок по пересечению окон.
// Блокируем строку комнаты: параллельные брони той же комнаты будут ждать,
// поэтому два конфликтующих окна не могут одновременно пройти проверку.
func (r *ReservationRepository) Reserve(ctx context.Context, roomID int64, w domain.Window, now time.Time) (*domain.Room, *domain.Reservation, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var room domain.Room
	err = tx.QueryRow(ctx,
		`SELECT id, name, capacity, status, reservation_id, created_at FROM rooms WHERE id=$1 FOR UPDATE`, roomID).
		Scan(&room.ID, &room.Name, &room.Capacity, &room.Status, &room.ReservationID, &room.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrRecordNotFound.WithDetail("room %d not found", roomID)
		}
		return nil, nil, err
	}

	if room.Status == domain.StatusUnavailable {
		return nil, nil, domain.ErrRoomNotAvailable.WithDetail("room %d is %s", room.ID, room.Status)
	}

	// Полуоткрытое пересечение: start < other_end AND other_start < end.
	var conflict bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE room_id=$1 AND status=$2
			  AND start_time < $4 AND end_time > $3
		)`, roomID, domain.ReservationActive, w.Start, w.End).Scan(&conflict)
	if err != nil {
		return nil, nil, err
	}
	if conflict {
		return nil, nil, domain.ErrDateNotAvailable.WithDetail(
			"room %d is already reserved within [%s, %s)", roomID, w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
	}

	res := &domain.Reservation{
		RoomID: roomID,
		Start:  w.Start,
		End:    w.End,
		Status: domain.ReservationActive,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO reservations (room_id, start_time, end_time, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		res.RoomID, res.Start, res.End, res.Status).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return nil, nil, err
	}

	// Будущее окно статус не меняет; комната занимается только с его началом.
	if w.Contains(now) {
		room.Occupy(res)
		if _, err := tx.Exec(ctx,
			`UPDATE rooms SET status=$2, reservation_id=$3 WHERE id=$1`,
			room.ID, room.Status, res.ID); err != nil {
			return nil, nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &room, res, nil
}

func (r *ReservationRepository) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	var res domain.Reservation
	query := `SELECT id, room_id, start_time, end_time, status, created_at FROM reservations WHERE id=$1`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&res.ID, &res.RoomID, &res.Start, &res.End, &res.Status, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound.WithDetail("reservation %d not found", id)
		}
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepository) ListByRoom(ctx context.Context, roomID int64) ([]domain.Reservation, error) {
	query := `
		SELECT id, room_id, start_time, end_time, status, created_at
		FROM reservations
		WHERE room_id=$1
		ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		if err := rows.Scan(&res.ID, &res.RoomID, &res.Start, &res.End, &res.Status, &res.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

func (r *ReservationRepository) Cancel(ctx context.Context, id int64, now time.Time) (*domain.Reservation, *domain.Room, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	var res domain.Reservation
	err = tx.QueryRow(ctx,
		`SELECT id, room_id, start_time, end_time, status, created_at FROM reservations WHERE id=$1 FOR UPDATE`, id).
		Scan(&res.ID, &res.RoomID, &res.Start, &res.End, &res.Status, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, domain.ErrRecordNotFound.WithDetail("reservation %d not found", id)
		}
		return nil, nil, err
	}
	if res.Status == domain.ReservationCancelled {
		return nil, nil, domain.ErrInvalidRequestData.WithDetail("reservation %d is already cancelled", id)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE reservations SET status=$2 WHERE id=$1`,
		id, domain.ReservationCancelled); err != nil {
		return nil, nil, err
	}
	res.Status = domain.ReservationCancelled

	// Если бронь занимала комнату — освобождаем.
	var released *domain.Room
	var room domain.Room
	err = tx.QueryRow(ctx, `
		UPDATE rooms SET reservation_id=NULL,
		       status=CASE WHEN status=$2 THEN $3 ELSE status END
		WHERE reservation_id=$1
		RETURNING id, name, capacity, status, reservation_id, created_at`,
		id, domain.StatusReserved, domain.StatusAvailable).
		Scan(&room.ID, &room.Name, &room.Capacity, &room.Status, &room.ReservationID, &room.CreatedAt)
	switch {
	case err == nil:
		released = &room
	case errors.Is(err, pgx.ErrNoRows):
		// бронь не была активной занятостью
	default:
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	return &res, released, nil
}

// SyncOccupancy — две фазы в одной транзакции:
// освобождение комнат с истёкшими занятостями и закрепление наступивших окон.
func (r *ReservationRepository) SyncOccupancy(ctx context.Context, now time.Time) ([]domain.Room, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var changed []domain.Room

	releaseQuery := `
		UPDATE rooms r SET reservation_id=NULL,
		       status=CASE WHEN r.status=$2 THEN $3 ELSE r.status END
		FROM reservations res
		WHERE r.reservation_id = res.id
		  AND (res.end_time <= $1 OR res.status=$4)
		RETURNING r.id, r.name, r.capacity, r.status, r.reservation_id, r.created_at`
	rows, err := tx.Query(ctx, releaseQuery,
		now, domain.StatusReserved, domain.StatusAvailable, domain.ReservationCancelled)
	if err != nil {
		return nil, err
	}
	changed, err = appendRooms(changed, rows)
	if err != nil {
		return nil, err
	}

	occupyQuery := `
		UPDATE rooms r SET reservation_id=res.id, status=$2
		FROM reservations res
		WHERE res.room_id = r.id
		  AND res.status=$3
		  AND res.start_time <= $1 AND res.end_time > $1
		  AND r.reservation_id IS NULL
		  AND r.status=$4
		RETURNING r.id, r.name, r.capacity, r.status, r.reservation_id, r.created_at`
	rows, err = tx.Query(ctx, occupyQuery,
		now, domain.StatusReserved, domain.ReservationActive, domain.StatusAvailable)
	if err != nil {
		return nil, err
	}
	changed, err = appendRooms(changed, rows)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return changed, nil
}

func appendRooms(dst []domain.Room, rows pgx.Rows) ([]domain.Room, error) {
	defer rows.Close()
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.Status, &rm.ReservationID, &rm.CreatedAt); err != nil {
			return nil, err
		}
		dst = append(dst, rm)
	}
	return dst, rows.Err()
}
