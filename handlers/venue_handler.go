package handlers

import (
	"net/http"

	"github.com/Dosada05/court-finder/middleware"
	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/services"
)

type VenueHandler struct {
	venueService services.VenueService
}

func NewVenueHandler(vs services.VenueService) *VenueHandler {
	return &VenueHandler{
		venueService: vs,
	}
}

// Пароли площадок видит только супер-админ.
func stripAdminPasswords(r *http.Request, venues ...*models.Venue) {
	if middleware.IsSuperAdmin(r.Context()) {
		return
	}
	for _, v := range venues {
		v.AdminPassword = nil
	}
}

// ListVenues godoc
// @Summary Список площадок
// @Tags venues
// @Description Все площадки по sort_order (NULL в конце), затем по имени. admin_password отдаётся только супер-админу.
// @Produce json
// @Param X-Admin-Secret header string false "Секрет супер-админа"
// @Success 200 {array} models.Venue
// @Failure 500 {object} map[string]string "Внутренняя ошибка сервера"
// @Router /venues [get]
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	for i := range venues {
		stripAdminPasswords(r, &venues[i])
	}

	if err := writeJSON(w, http.StatusOK, venues, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetVenue godoc
// @Summary Получить площадку по ID
// @Tags venues
// @Produce json
// @Param id path int true "ID площадки"
// @Success 200 {object} models.Venue
// @Failure 400 {object} map[string]string "Некорректный ID"
// @Failure 404 {object} map[string]string "Площадка не найдена"
// @Router /venues/{id} [get]
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.Get(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	stripAdminPasswords(r, venue)

	if err := writeJSON(w, http.StatusOK, venue, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateVenue godoc
// @Summary Создать площадку
// @Tags venues
// @Description Неизвестные ключи отбрасываются. Картинки в виде data URI загружаются на хостинг изображений.
// @Accept json
// @Produce json
// @Param body body services.VenueInput true "Поля площадки и sport_data"
// @Success 201 {object} models.Venue
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 403 {object} map[string]string "Нет прав"
// @Failure 500 {object} map[string]string "Внутренняя ошибка сервера"
// @Router /venues [post]
func (h *VenueHandler) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var input services.VenueInput
	if err := readAllowListedJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	stripAdminPasswords(r, venue)

	if err := writeJSON(w, http.StatusCreated, venue, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateVenue godoc
// @Summary Обновить площадку
// @Tags venues
// @Description Переданные поля заменяют сохранённые, отсутствующие не трогаются. Пустое тело ничего не меняет.
// @Accept json
// @Produce json
// @Param id path int true "ID площадки"
// @Param body body services.VenueInput true "Изменяемые поля"
// @Success 200 {object} models.Venue
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Площадка не найдена"
// @Router /venues/{id} [put]
func (h *VenueHandler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.VenueInput
	if err := readAllowListedJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	venue, err := h.venueService.Update(r.Context(), id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	stripAdminPasswords(r, venue)

	if err := writeJSON(w, http.StatusOK, venue, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteVenue godoc
// @Summary Удалить площадку
// @Tags venues
// @Param id path int true "ID площадки"
// @Success 204 "Удалено"
// @Failure 404 {object} map[string]string "Площадка не найдена"
// @Router /venues/{id} [delete]
func (h *VenueHandler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.venueService.Delete(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ReorderVenues godoc
// @Summary Изменить порядок площадок
// @Tags venues
// @Description sort_order = позиция в orderedIds. С sportId порядок меняется внутри вида спорта. Всё в одной транзакции.
// @Accept json
// @Param body body services.ReorderInput true "Новый порядок"
// @Success 204 "Порядок сохранён"
// @Failure 400 {object} map[string]string "Некорректный список"
// @Failure 404 {object} map[string]string "Площадка не найдена"
// @Failure 503 {object} map[string]string "Таблицы видов спорта отсутствуют"
// @Router /venues/order [patch]
func (h *VenueHandler) ReorderVenues(w http.ResponseWriter, r *http.Request) {
	var input services.ReorderInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.venueService.Reorder(r.Context(), input); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
