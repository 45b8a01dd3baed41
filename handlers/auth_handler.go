package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/court-finder/middleware"
	"github.com/Dosada05/court-finder/services"
)

type AuthHandler struct {
	authService services.AuthService
	jwtSecret   []byte
}

func NewAuthHandler(authService services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
	}
}

type LoginInput struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	AllowedVenueIDs []int  `json:"allowedVenueIds"`
	SuperAdmin      bool   `json:"superAdmin"`
	Token           string `json:"token"`
}

// Login godoc
// @Summary Вход администратора
// @Tags auth
// @Description Возвращает ID всех площадок с этим паролем и JWT. Секрет супер-админа даёт доступ ко всем площадкам.
// @Accept json
// @Produce json
// @Param body body LoginInput true "Пароль"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Пустой пароль"
// @Failure 401 {object} map[string]string "Неверный пароль"
// @Failure 429 {object} map[string]string "Слишком много попыток"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	scope, err := h.authService.Login(r.Context(), input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	token, err := middleware.NewAdminToken(scope, h.jwtSecret, time.Now())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}

	ids := scope.VenueIDs
	if ids == nil {
		ids = []int{}
	}
	response := LoginResponse{
		AllowedVenueIDs: ids,
		SuperAdmin:      scope.SuperAdmin,
		Token:           token,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
