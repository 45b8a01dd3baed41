package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/court-finder/repositories"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден
	ErrVenueNotFound = errors.New("venue not found")
	ErrSportNotFound = errors.New("sport not found")

	// Ошибки валидации
	ErrValidationFailed  = errors.New("validation failed")
	ErrSportNameRequired = errors.New("sport name is required")
	ErrPasswordRequired  = errors.New("password is required")
	ErrInvalidOrder      = errors.New("orderedIds must be a non-empty list of distinct positive venue ids")
	ErrUnknownSport      = errors.New("unknown sport in sport_data")

	// Ошибки аутентификации и авторизации
	ErrInvalidCredentials = errors.New("invalid password")
	ErrForbiddenOperation = errors.New("operation not allowed for the current admin")

	// Схема без таблиц видов спорта
	ErrSportsUnavailable = errors.New("sports are not available in this database")
)

// handleRepositoryError translates repository sentinels into service ones.
func handleRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrVenueNotFound):
		return fmt.Errorf("%w: %v", ErrVenueNotFound, err)
	case errors.Is(err, repositories.ErrSportNotFound):
		return ErrSportNotFound
	case errors.Is(err, repositories.ErrSportReference):
		return fmt.Errorf("%w: %v", ErrUnknownSport, err)
	case errors.Is(err, repositories.ErrSportsUnavailable):
		return ErrSportsUnavailable
	default:
		return err
	}
}
