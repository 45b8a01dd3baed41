package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/repositories"
	"github.com/Dosada05/court-finder/utils"
)

type SportService interface {
	CreateSport(ctx context.Context, input SportInput) (*models.Sport, error)
	GetAllSports(ctx context.Context) ([]models.Sport, error)
	GetSport(ctx context.Context, id int) (*models.Sport, error)
	UpdateSport(ctx context.Context, id int, input SportInput) (*models.Sport, error)
	DeleteSport(ctx context.Context, id int) error
}

// SportInput accepts name_en as an alias of name. The slug is always derived.
type SportInput struct {
	Name   string  `json:"name"`
	NameEn string  `json:"name_en"`
	NameZh *string `json:"name_zh"`
}

func (in SportInput) name() string {
	if name := strings.TrimSpace(in.Name); name != "" {
		return name
	}
	return strings.TrimSpace(in.NameEn)
}

type sportService struct {
	db        *sql.DB
	sportRepo repositories.SportRepository
	events    EventPublisher
	logger    *slog.Logger
}

func NewSportService(db *sql.DB, sportRepo repositories.SportRepository, events EventPublisher, logger *slog.Logger) SportService {
	return &sportService{
		db:        db,
		sportRepo: sportRepo,
		events:    events,
		logger:    logger,
	}
}

func (s *sportService) CreateSport(ctx context.Context, input SportInput) (*models.Sport, error) {
	sport, err := sportFromInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.sportRepo.Create(ctx, sport); err != nil {
		return nil, fmt.Errorf("failed to create sport: %w", handleRepositoryError(err))
	}

	publish(ctx, s.events, s.logger, sportEvent(models.EventSportCreated, sport.ID))
	return sport, nil
}

func (s *sportService) GetAllSports(ctx context.Context) ([]models.Sport, error) {
	sports, err := s.sportRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	return sports, nil
}

func (s *sportService) GetSport(ctx context.Context, id int) (*models.Sport, error) {
	sport, err := s.sportRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	return sport, nil
}

func (s *sportService) UpdateSport(ctx context.Context, id int, input SportInput) (*models.Sport, error) {
	sport, err := sportFromInput(input)
	if err != nil {
		return nil, err
	}
	sport.ID = id

	if err := s.sportRepo.Update(ctx, sport); err != nil {
		return nil, handleRepositoryError(err)
	}

	publish(ctx, s.events, s.logger, sportEvent(models.EventSportUpdated, id))
	return sport, nil
}

// DeleteSport removes the sport's venue links first; venues themselves stay.
func (s *sportService) DeleteSport(ctx context.Context, id int) error {
	err := runInTx(ctx, s.db, s.logger, "sport.delete", func(tx *sql.Tx) error {
		if err := s.sportRepo.DeleteLinks(ctx, tx, id); err != nil {
			return err
		}
		return s.sportRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return handleRepositoryError(err)
	}

	publish(ctx, s.events, s.logger, sportEvent(models.EventSportDeleted, id))
	return nil
}

func sportFromInput(input SportInput) (*models.Sport, error) {
	name := input.name()
	if name == "" {
		return nil, ErrSportNameRequired
	}

	var nameZh *string
	if input.NameZh != nil {
		if zh := strings.TrimSpace(*input.NameZh); zh != "" {
			nameZh = &zh
		}
	}

	return &models.Sport{
		Name:   name,
		NameZh: nameZh,
		Slug:   utils.SportSlug(name),
	}, nil
}
