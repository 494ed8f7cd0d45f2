package http

import (
	"net/http"
	"time"

	"github.com/cwrk-planet/booking-service/internal/transport/ws"
	"github.com/cwrk-planet/booking-service/pkg/httputil"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(httputil.MiddlewareRequestID)
	r.Use(httputil.MiddlewareLogging)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)
	r.Use(middlewareChi.Timeout(30 * time.Second))

	// WS табло доступности
	r.Get("/ws/availability", wsServer.HandleWS)

	r.Route("/rooms", func(rm chi.Router) {
		rm.Post("/", h.CreateRoom)
		rm.Get("/", h.ListRooms)

		rm.Route("/{id}", func(rr chi.Router) {
			rr.Get("/", h.GetRoom)
			rr.Put("/", h.UpdateRoom)
			rr.Delete("/", h.DeleteRoom)
			rr.Post("/reservations", h.Reserve)
			rr.Get("/reservations", h.ListReservations)
		})
	})

	r.Route("/reservations/{id}", func(rr chi.Router) {
		rr.Get("/", h.GetReservation)
		rr.Delete("/", h.CancelReservation)
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
