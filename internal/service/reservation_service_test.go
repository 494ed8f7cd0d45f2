package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationService_Reserve_MalformedWindow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	_, _, err = e.reservations.Reserve(ctx, room.ID, hours(11, 10))
	assert.ErrorIs(t, err, domain.ErrInvalidRequestData)

	_, _, err = e.reservations.Reserve(ctx, room.ID, domain.Window{})
	assert.ErrorIs(t, err, domain.ErrInvalidRequestData)

	list, err := e.reservations.ListByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestReservationService_Reserve_RoomNotFound(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.reservations.Reserve(context.Background(), 404, hours(10, 11))
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestReservationService_Reserve_UnavailableRoom(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)
	_, err = e.rooms.Update(ctx, room.ID, "Focus", 4, domain.StatusUnavailable)
	require.NoError(t, err)

	// любое окно отклоняется, пока комната UNAVAILABLE
	for _, w := range []domain.Window{hours(9, 10), hours(15, 16), hours(6, 7)} {
		_, _, err := e.reservations.Reserve(ctx, room.ID, w)
		assert.ErrorIs(t, err, domain.ErrRoomNotAvailable)
	}
}

func TestReservationService_Reserve_CurrentWindowOccupiesRoom(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	// testNow = 09:00, окно уже идёт
	updated, res, err := e.reservations.Reserve(ctx, room.ID, hours(9, 11))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusReserved, updated.Status)
	require.NotNil(t, updated.ReservationID)
	assert.Equal(t, res.ID, *updated.ReservationID)
	assert.Equal(t, domain.ReservationActive, res.Status)
	assert.Len(t, e.notifier.reserved, 1)
}

func TestReservationService_Reserve_FutureWindowKeepsStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	updated, res, err := e.reservations.Reserve(ctx, room.ID, hours(14, 16))
	require.NoError(t, err)

	// будущая бронь регистрируется, но комната свободна сейчас
	assert.Equal(t, domain.StatusAvailable, updated.Status)
	assert.Nil(t, updated.ReservationID)
	assert.Equal(t, domain.ReservationActive, res.Status)
}

func TestReservationService_Reserve_OverlapRejected(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	_, _, err = e.reservations.Reserve(ctx, room.ID, hours(10, 11))
	require.NoError(t, err)

	// пересечение с [10:00, 11:00)
	_, _, err = e.reservations.Reserve(ctx, room.ID, domain.Window{
		Start: hours(10, 11).Start.Add(30 * time.Minute),
		End:   hours(10, 11).End.Add(30 * time.Minute),
	})
	assert.ErrorIs(t, err, domain.ErrDateNotAvailable)

	// смежное окно [11:00, 12:00) проходит
	_, _, err = e.reservations.Reserve(ctx, room.ID, hours(11, 12))
	assert.NoError(t, err)
}

func TestReservationService_Reserve_ConflictsWithCurrentOccupancy(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	_, _, err = e.reservations.Reserve(ctx, room.ID, hours(9, 11))
	require.NoError(t, err)

	_, _, err = e.reservations.Reserve(ctx, room.ID, hours(10, 12))
	assert.ErrorIs(t, err, domain.ErrDateNotAvailable)
}

func TestReservationService_Reserve_CancelledWindowReusable(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	_, res, err := e.reservations.Reserve(ctx, room.ID, hours(14, 16))
	require.NoError(t, err)

	_, err = e.reservations.Cancel(ctx, res.ID)
	require.NoError(t, err)

	// отменённая бронь не конфликтует
	_, _, err = e.reservations.Reserve(ctx, room.ID, hours(14, 16))
	assert.NoError(t, err)
}

func TestReservationService_ConcurrentOverlappingReserve(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	windows := []domain.Window{hours(10, 12), hours(11, 13)}

	var wg sync.WaitGroup
	errs := make([]error, len(windows))
	for i, w := range windows {
		wg.Add(1)
		go func(i int, w domain.Window) {
			defer wg.Done()
			_, _, errs[i] = e.reservations.Reserve(ctx, room.ID, w)
		}(i, w)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			assert.ErrorIs(t, err, domain.ErrDateNotAvailable)
			conflicts++
		}
	}
	assert.Equal(t, 1, ok, "ровно одна бронь должна пройти")
	assert.Equal(t, 1, conflicts)

	list, err := e.reservations.ListByRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestReservationService_GetAndList(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	_, second, err := e.reservations.Reserve(ctx, room.ID, hours(14, 15))
	require.NoError(t, err)
	_, first, err := e.reservations.Reserve(ctx, room.ID, hours(10, 11))
	require.NoError(t, err)

	got, err := e.reservations.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = e.reservations.Get(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	list, err := e.reservations.ListByRoom(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// сортировка по началу окна
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	_, err = e.reservations.ListByRoom(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestReservationService_Cancel_ReleasesOccupiedRoom(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	_, res, err := e.reservations.Reserve(ctx, room.ID, hours(9, 11))
	require.NoError(t, err)

	cancelled, err := e.reservations.Cancel(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, cancelled.Status)

	got, err := e.rooms.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAvailable, got.Status)
	assert.Nil(t, got.ReservationID)
	require.Len(t, e.notifier.released, 1)
	assert.Equal(t, room.ID, e.notifier.released[0].ID)
}

func TestReservationService_Cancel_Errors(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.reservations.Cancel(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)
	_, res, err := e.reservations.Reserve(ctx, room.ID, hours(14, 15))
	require.NoError(t, err)

	_, err = e.reservations.Cancel(ctx, res.ID)
	require.NoError(t, err)

	_, err = e.reservations.Cancel(ctx, res.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidRequestData)
}

func TestReservationService_SyncOccupancy_ReleasesExpired(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	_, _, err = e.reservations.Reserve(ctx, room.ID, hours(9, 11))
	require.NoError(t, err)

	// окно закончилось
	e.now = hours(9, 11).End

	changed, err := e.reservations.SyncOccupancy(ctx)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, domain.StatusAvailable, changed[0].Status)
	assert.Nil(t, changed[0].ReservationID)
}

func TestReservationService_SyncOccupancy_OccupiesDueWindow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	room, err := e.rooms.Register(ctx, "Focus", 4)
	require.NoError(t, err)

	_, res, err := e.reservations.Reserve(ctx, room.ID, hours(14, 16))
	require.NoError(t, err)

	// будущее окно наступило
	e.now = hours(14, 16).Start.Add(time.Minute)

	changed, err := e.reservations.SyncOccupancy(ctx)
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, domain.StatusReserved, changed[0].Status)
	require.NotNil(t, changed[0].ReservationID)
	assert.Equal(t, res.ID, *changed[0].ReservationID)
}

func TestReservationService_SyncOccupancy_NoChanges(t *testing.T) {
	e := newEnv(t)

	changed, err := e.reservations.SyncOccupancy(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Empty(t, e.notifier.released)
}
