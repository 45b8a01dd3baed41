package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/Dosada05/court-finder/realtime"
)

type HealthHandler struct {
	db  *sql.DB
	hub *realtime.Hub
}

func NewHealthHandler(db *sql.DB, hub *realtime.Hub) *HealthHandler {
	return &HealthHandler{db: db, hub: hub}
}

// Healthz godoc
// @Summary Проверка состояния
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /healthz [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.db.PingContext(ctx); err != nil {
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	response := jsonResponse{"status": status}
	if h.hub != nil {
		response["realtime_clients"] = h.hub.Clients()
	}
	if err := writeJSON(w, code, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
