package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cwrk-planet/booking-service/internal/domain"

	"github.com/gorilla/websocket"
)

type RoomLister interface {
	List(ctx context.Context) ([]domain.Room, error)
}

// Server раздаёт события доступности комнат подписчикам табло.
// Поток только на запись; от клиента ожидаются лишь pong-и.
type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	rooms    RoomLister

	pingEvery time.Duration
}

func NewServer(hub *Hub, rooms RoomLister) *Server {
	return &Server{
		hub:   hub,
		rooms: rooms,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /ws/availability
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту при ошибке
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	c := newWsConn(conn)
	s.hub.Add(c)

	if err := s.sendState(r.Context(), c); err != nil {
		slog.Warn("ws send initial state failed", "err", err)
	}

	go s.writeLoop(r.Context(), c)
	s.readLoop(c)

	s.hub.Remove(c)
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "err", err)
	}
}

func (s *Server) sendState(ctx context.Context, c *wsConn) error {
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return err
	}
	items := make([]RoomStateItem, 0, len(rooms))
	for _, rm := range rooms {
		items = append(items, RoomStateItem{
			RoomID:        rm.ID,
			Name:          rm.Name,
			Capacity:      rm.Capacity,
			Status:        string(rm.Status),
			ReservationID: rm.ReservationID,
		})
	}

	return c.Send(Message{
		Type:    TypeState,
		Payload: StatePayload{Rooms: items},
	})
}

func (s *Server) readLoop(c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		// входящие сообщения игнорируются, канал держим ради pong/close
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

// --- ports.AvailabilityNotifier ---

func (s *Server) NotifyRoomCreated(room domain.Room) {
	s.hub.Broadcast(Message{Type: TypeRoomCreated, Payload: roomEvent(room)})
}

func (s *Server) NotifyRoomUpdated(room domain.Room) {
	s.hub.Broadcast(Message{Type: TypeRoomUpdated, Payload: roomEvent(room)})
}

func (s *Server) NotifyRoomDeleted(id int64) {
	s.hub.Broadcast(Message{Type: TypeRoomDeleted, Payload: RoomEventPayload{RoomID: id}})
}

func (s *Server) NotifyReserved(room domain.Room, res domain.Reservation) {
	s.hub.Broadcast(Message{Type: TypeRoomReserved, Payload: ReservedPayload{
		RoomID:        room.ID,
		ReservationID: res.ID,
		Start:         res.Start,
		End:           res.End,
		RoomStatus:    string(room.Status),
	}})
}

func (s *Server) NotifyReleased(rooms []domain.Room) {
	for _, rm := range rooms {
		s.hub.Broadcast(Message{Type: TypeRoomReleased, Payload: roomEvent(rm)})
	}
}

func roomEvent(rm domain.Room) RoomEventPayload {
	return RoomEventPayload{
		RoomID:        rm.ID,
		Name:          rm.Name,
		Status:        string(rm.Status),
		ReservationID: rm.ReservationID,
	}
}

// --- conn ---

type wsConn struct {
	conn   *websocket.Conn
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn) *wsConn {
	return &wsConn{
		conn:   c,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(msg Message) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(msg)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}
