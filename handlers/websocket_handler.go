package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Dosada05/court-finder/realtime"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Лента изменений публичная, как и GET /api/venues.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	hub *realtime.Hub
}

func NewWebSocketHandler(hub *realtime.Hub) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
	}
}

// ServeVenues подписывает клиента на все изменения площадок и видов спорта.
// Клиент подключается к /ws/venues
func (h *WebSocketHandler) ServeVenues(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, realtime.RoomAll)
}

// ServeVenue подписывает клиента на изменения одной площадки: /ws/venues/{id}
func (h *WebSocketHandler) ServeVenue(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.serve(w, r, realtime.RoomForVenue(id))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, room string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP ошибку клиенту
		slog.WarnContext(r.Context(), "Failed to upgrade websocket connection", slog.String("room", room), slog.Any("error", err))
		return
	}
	h.hub.Attach(conn, room)
	slog.DebugContext(r.Context(), "Websocket client attached", slog.String("room", room))
}
