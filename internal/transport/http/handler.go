package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cwrk-planet/booking-service/internal/domain"
	"github.com/cwrk-planet/booking-service/internal/service"
	"github.com/cwrk-planet/booking-service/pkg/httputil"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	roomSvc        *service.RoomService
	reservationSvc *service.ReservationService
}

func NewHandler(room *service.RoomService, reservation *service.ReservationService) *Handler {
	return &Handler{
		roomSvc:        room,
		reservationSvc: reservation,
	}
}

// writeError — доменные ошибки несут статус и заголовок сами,
// всё остальное отдаём как 500 без деталей.
func writeError(w http.ResponseWriter, op string, err error) {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		httputil.JSON(w, domErr.Status, ErrorResponse{Error: domErr.Title, Detail: domErr.Detail})
		return
	}
	slog.Error("handler."+op, slog.Any("err", err))
	httputil.JSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Server Error"})
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidRequestData.WithDetail("id must be a positive integer")
	}
	return id, nil
}

// GET /rooms
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomSvc.List(r.Context())
	if err != nil {
		writeError(w, "ListRooms", err)
		return
	}
	if len(rooms) == 0 {
		httputil.NoContent(w)
		return
	}

	resp := RoomsListResponse{Items: make([]RoomItem, 0, len(rooms))}
	for _, rm := range rooms {
		resp.Items = append(resp.Items, toRoomItem(rm))
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// GET /rooms/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "GetRoom", err)
		return
	}

	room, err := h.roomSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, "GetRoom", err)
		return
	}
	httputil.JSON(w, http.StatusOK, toRoomItem(*room))
}

// POST /rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "CreateRoom", domain.ErrInvalidRequestData.WithDetail("invalid json"))
		return
	}

	room, err := h.roomSvc.Register(r.Context(), req.Name, req.Capacity)
	if err != nil {
		writeError(w, "CreateRoom", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, toRoomItem(*room))
}

// PUT /rooms/{id}
func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "UpdateRoom", err)
		return
	}

	var req RoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "UpdateRoom", domain.ErrInvalidRequestData.WithDetail("invalid json"))
		return
	}

	room, err := h.roomSvc.Update(r.Context(), id, req.Name, req.Capacity, domain.RoomStatus(req.Status))
	if err != nil {
		writeError(w, "UpdateRoom", err)
		return
	}
	httputil.JSON(w, http.StatusOK, toRoomItem(*room))
}

// DELETE /rooms/{id}
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "DeleteRoom", err)
		return
	}

	if err := h.roomSvc.Delete(r.Context(), id); err != nil {
		writeError(w, "DeleteRoom", err)
		return
	}
	httputil.NoContent(w)
}

// POST /rooms/{id}/reservations
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "Reserve", err)
		return
	}

	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Reserve", domain.ErrInvalidRequestData.WithDetail("invalid json"))
		return
	}

	room, res, err := h.reservationSvc.Reserve(r.Context(), id, domain.Window{Start: req.Start, End: req.End})
	if err != nil {
		writeError(w, "Reserve", err)
		return
	}
	httputil.JSON(w, http.StatusCreated, ReserveResponse{
		Room:        toRoomItem(*room),
		Reservation: toReservationItem(*res),
	})
}

// GET /rooms/{id}/reservations
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "ListReservations", err)
		return
	}

	list, err := h.reservationSvc.ListByRoom(r.Context(), id)
	if err != nil {
		writeError(w, "ListReservations", err)
		return
	}

	resp := ReservationsListResponse{Items: make([]ReservationItem, 0, len(list))}
	for _, res := range list {
		resp.Items = append(resp.Items, toReservationItem(res))
	}
	httputil.JSON(w, http.StatusOK, resp)
}

// GET /reservations/{id}
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "GetReservation", err)
		return
	}

	res, err := h.reservationSvc.Get(r.Context(), id)
	if err != nil {
		writeError(w, "GetReservation", err)
		return
	}
	httputil.JSON(w, http.StatusOK, toReservationItem(*res))
}

// DELETE /reservations/{id} — отмена брони
func (h *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, "CancelReservation", err)
		return
	}

	res, err := h.reservationSvc.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, "CancelReservation", err)
		return
	}
	httputil.JSON(w, http.StatusOK, toReservationItem(*res))
}
