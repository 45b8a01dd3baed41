package handlers

import (
	"net/http"

	"github.com/Dosada05/court-finder/services"
)

type SportHandler struct {
	sportService services.SportService
}

func NewSportHandler(ss services.SportService) *SportHandler {
	return &SportHandler{
		sportService: ss,
	}
}

// CreateSport godoc
// @Summary Создать вид спорта
// @Tags sports
// @Description slug строится из имени. Принимает name или name_en.
// @Accept json
// @Produce json
// @Param body body services.SportInput true "Имя вида спорта"
// @Success 201 {object} models.Sport
// @Failure 400 {object} map[string]string "Пустое имя"
// @Failure 503 {object} map[string]string "Таблицы видов спорта отсутствуют"
// @Router /sports [post]
func (h *SportHandler) CreateSport(w http.ResponseWriter, r *http.Request) {
	var input services.SportInput
	if err := readAllowListedJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.CreateSport(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, sport, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetAllSports godoc
// @Summary Все виды спорта
// @Tags sports
// @Produce json
// @Success 200 {array} models.Sport
// @Router /sports [get]
func (h *SportHandler) GetAllSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.sportService.GetAllSports(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, sports, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetSport godoc
// @Summary Вид спорта по ID
// @Tags sports
// @Produce json
// @Param id path int true "ID вида спорта"
// @Success 200 {object} models.Sport
// @Failure 400 {object} map[string]string "Неверный ID"
// @Failure 404 {object} map[string]string "Не найден"
// @Failure 503 {object} map[string]string "Таблицы видов спорта отсутствуют"
// @Router /sports/{id} [get]
func (h *SportHandler) GetSport(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	sport, err := h.sportService.GetSport(r.Context(), sportID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, sport, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) UpdateSport(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SportInput
	if err := readAllowListedJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	updatedSport, err := h.sportService.UpdateSport(r.Context(), sportID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, updatedSport, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *SportHandler) DeleteSport(w http.ResponseWriter, r *http.Request) {
	sportID, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.sportService.DeleteSport(r.Context(), sportID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
