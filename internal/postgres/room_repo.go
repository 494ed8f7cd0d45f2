package postgres

import (
	"context"
	"errors"

	"github.com/cwrk-planet/booking-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create полагается на уникальный индекс rooms.name:
// check-then-act не нужен, гонку разрешает сама БД.
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `
		INSERT INTO rooms (name, capacity, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.db.QueryRow(ctx, query, room.Name, room.Capacity, room.Status).
		Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRoom.WithDetail("room %q already registered", room.Name)
		}
		return err
	}
	return nil
}

func (r *RoomRepository) Get(ctx context.Context, id int64) (*domain.Room, error) {
	var rm domain.Room
	query := `SELECT id, name, capacity, status, reservation_id, created_at FROM rooms WHERE id=$1`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.Status, &rm.ReservationID, &rm.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound.WithDetail("room %d not found", id)
		}
		return nil, err
	}
	return &rm, nil
}

func (r *RoomRepository) List(ctx context.Context) ([]domain.Room, error) {
	query := `
		SELECT id, name, capacity, status, reservation_id, created_at
		FROM rooms
		ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Capacity, &rm.Status, &rm.ReservationID, &rm.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

// Update — смена статуса проверяется под блокировкой строки, чтобы
// административный перевод не пересёкся с параллельным бронированием.
func (r *RoomRepository) Update(ctx context.Context, id int64, name string, capacity int, status domain.RoomStatus) (*domain.Room, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var cur domain.Room
	err = tx.QueryRow(ctx,
		`SELECT id, name, capacity, status, reservation_id, created_at FROM rooms WHERE id=$1 FOR UPDATE`, id).
		Scan(&cur.ID, &cur.Name, &cur.Capacity, &cur.Status, &cur.ReservationID, &cur.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound.WithDetail("room %d not found", id)
		}
		return nil, err
	}

	if err := cur.CanSetStatus(status); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE rooms SET name=$2, capacity=$3, status=$4 WHERE id=$1`,
		id, name, capacity, status); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateRoom.WithDetail("room %q already registered", name)
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	cur.Name = name
	cur.Capacity = capacity
	cur.Status = status
	return &cur, nil
}

// Delete отклоняет удаление при любых бронях комнаты, включая прошедшие.
func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM rooms WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrRecordNotFound.WithDetail("room %d not found", id)
	}

	var hasReservations bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM reservations WHERE room_id=$1)`, id).Scan(&hasReservations); err != nil {
		return err
	}
	if hasReservations {
		return domain.ErrAssociatedResources.WithDetail("room %d has dependent reservations", id)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
