package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/repositories"
	"github.com/Dosada05/court-finder/utils"
)

type AuthService interface {
	// Login returns the scope granted by password. Several venues may share
	// one password; all of them are returned.
	Login(ctx context.Context, password string) (*models.AdminScope, error)
	IsSuperAdminSecret(secret string) bool
	// HashLegacyPasswords rewrites plaintext admin passwords as bcrypt hashes.
	HashLegacyPasswords(ctx context.Context) (int, error)
}

type authService struct {
	venueRepo        repositories.VenueRepository
	superAdminSecret string
	logger           *slog.Logger
	bcryptCost       int
}

func NewAuthService(venueRepo repositories.VenueRepository, superAdminSecret string, logger *slog.Logger) AuthService {
	return &authService{
		venueRepo:        venueRepo,
		superAdminSecret: superAdminSecret,
		logger:           logger,
		bcryptCost:       utils.BcryptCost,
	}
}

func (s *authService) IsSuperAdminSecret(secret string) bool {
	if s.superAdminSecret == "" || secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.superAdminSecret)) == 1
}

func (s *authService) Login(ctx context.Context, password string) (*models.AdminScope, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	if s.IsSuperAdminSecret(password) {
		ids, err := s.venueRepo.ListIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list venue ids: %w", err)
		}
		return &models.AdminScope{SuperAdmin: true, VenueIDs: ids}, nil
	}

	creds, err := s.venueRepo.ListAdminCredentials(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load admin credentials: %w", err)
	}

	// bcrypt дорогой, проверяем параллельно
	matched := make([]bool, len(creds))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, c := range creds {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matched[i] = utils.CheckPassword(password, c.Password)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ids := make([]int, 0)
	for i, ok := range matched {
		if ok {
			ids = append(ids, creds[i].VenueID)
		}
	}
	if len(ids) == 0 {
		return nil, ErrInvalidCredentials
	}

	s.logger.InfoContext(ctx, "Admin login", slog.Int("venues", len(ids)))
	return &models.AdminScope{VenueIDs: ids}, nil
}

func (s *authService) HashLegacyPasswords(ctx context.Context) (int, error) {
	creds, err := s.venueRepo.ListAdminCredentials(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load admin credentials: %w", err)
	}

	hashed := 0
	for _, c := range creds {
		if utils.IsPasswordHash(c.Password) {
			continue
		}
		hash, err := utils.HashPassword(c.Password, s.bcryptCost)
		if err != nil {
			return hashed, fmt.Errorf("failed to hash password of venue %d: %w", c.VenueID, err)
		}
		if err := s.venueRepo.SetAdminPassword(ctx, nil, c.VenueID, &hash); err != nil {
			return hashed, handleRepositoryError(err)
		}
		hashed++
	}
	return hashed, nil
}
