package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/repositories"
	"github.com/Dosada05/court-finder/utils"
)

type VenueService interface {
	List(ctx context.Context) ([]models.Venue, error)
	Get(ctx context.Context, id int) (*models.Venue, error)
	Create(ctx context.Context, input VenueInput) (*models.Venue, error)
	Update(ctx context.Context, id int, input VenueInput) (*models.Venue, error)
	Delete(ctx context.Context, id int) error
	Reorder(ctx context.Context, input ReorderInput) error
}

// VenueInput is the allow-list of writable venue fields. Pointer fields are
// absent when nil; Optional fields additionally distinguish an explicit null.
// Keys outside this struct are ignored by the decoder.
type VenueInput struct {
	Name            *string                 `json:"name"`
	Description     *string                 `json:"description"`
	Address         *string                 `json:"address"`
	MTRStation      *string                 `json:"mtrStation"`
	MTRExit         *string                 `json:"mtrExit"`
	WalkingDistance *int                    `json:"walkingDistance"`
	CeilingHeight   *float64                `json:"ceilingHeight"`
	StartingPrice   *int                    `json:"startingPrice"`
	Pricing         *models.Pricing         `json:"pricing"`
	Images          *[]string               `json:"images"`
	Amenities       *[]string               `json:"amenities"`
	WhatsApp        *string                 `json:"whatsapp"`
	SocialLink      models.Optional[string] `json:"socialLink"`
	OrgIcon         models.Optional[string] `json:"orgIcon"`
	Coordinates     *models.Coordinates     `json:"coordinates"`
	SortOrder       models.Optional[int]    `json:"sort_order"`
	AdminPassword   models.Optional[string] `json:"admin_password"`

	MembershipEnabled     *bool                   `json:"membership_enabled"`
	MembershipDescription models.Optional[string] `json:"membership_description"`
	MembershipJoinLink    models.Optional[string] `json:"membership_join_link"`

	SportData *[]SportLinkInput `json:"sport_data"`
}

type SportLinkInput struct {
	SportID   int  `json:"sport_id"`
	SortOrder *int `json:"sort_order"`
}

type ReorderInput struct {
	OrderedIDs []int `json:"orderedIds"`
	SportID    *int  `json:"sportId"`
}

type venueService struct {
	db         *sql.DB
	venueRepo  repositories.VenueRepository
	images     *ImageProcessor
	events     EventPublisher
	logger     *slog.Logger
	bcryptCost int
}

func NewVenueService(
	db *sql.DB,
	venueRepo repositories.VenueRepository,
	images *ImageProcessor,
	events EventPublisher,
	logger *slog.Logger,
) VenueService {
	return &venueService{
		db:         db,
		venueRepo:  venueRepo,
		images:     images,
		events:     events,
		logger:     logger,
		bcryptCost: utils.BcryptCost,
	}
}

func (s *venueService) List(ctx context.Context) ([]models.Venue, error) {
	venues, err := s.venueRepo.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	links, err := s.venueRepo.ListSportLinks(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to attach sport data: %w", err)
	}
	for i := range venues {
		attachSportData(&venues[i], links)
	}
	return venues, nil
}

func (s *venueService) Get(ctx context.Context, id int) (*models.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, handleRepositoryError(err)
	}
	links, err := s.venueRepo.ListSportLinks(ctx, nil, []int{id})
	if err != nil {
		return nil, fmt.Errorf("failed to attach sport data: %w", err)
	}
	attachSportData(venue, links)
	return venue, nil
}

func (s *venueService) Create(ctx context.Context, input VenueInput) (*models.Venue, error) {
	venue := models.Venue{
		Name:                  derefString(input.Name),
		Description:           derefString(input.Description),
		Address:               derefString(input.Address),
		MTRStation:            derefString(input.MTRStation),
		MTRExit:               derefString(input.MTRExit),
		WhatsApp:              derefString(input.WhatsApp),
		SocialLink:            input.SocialLink.Ptr(),
		SortOrder:             input.SortOrder.Ptr(),
		MembershipDescription: input.MembershipDescription.Ptr(),
		MembershipJoinLink:    input.MembershipJoinLink.Ptr(),
		Pricing:               models.Pricing{Type: models.PricingText},
		Images:                models.StringList{},
		Amenities:             models.StringList{},
	}
	if input.WalkingDistance != nil {
		venue.WalkingDistance = *input.WalkingDistance
	}
	if input.CeilingHeight != nil {
		venue.CeilingHeight = *input.CeilingHeight
	}
	if input.StartingPrice != nil {
		venue.StartingPrice = *input.StartingPrice
	}
	if input.Coordinates != nil {
		venue.Coordinates = *input.Coordinates
	}
	if input.MembershipEnabled != nil {
		venue.MembershipEnabled = *input.MembershipEnabled
	}
	if input.Amenities != nil {
		venue.Amenities = models.StringList(*input.Amenities)
	}

	images, orgIcon, pricing := s.images.resolveVenueImages(ctx, venueImages{
		images:  input.Images,
		orgIcon: input.OrgIcon.Ptr(),
		pricing: input.Pricing,
	})
	if images != nil {
		venue.Images = images
	}
	venue.OrgIcon = orgIcon
	if pricing != nil {
		venue.Pricing = *pricing
	}

	password, err := s.hashAdminPassword(input.AdminPassword)
	if err != nil {
		return nil, err
	}
	venue.AdminPassword = password

	links := sportLinks(input.SportData)

	err = runInTx(ctx, s.db, s.logger, "venue.create", func(tx *sql.Tx) error {
		if err := s.venueRepo.Create(ctx, tx, &venue); err != nil {
			return err
		}
		return s.replaceSportLinks(ctx, tx, venue.ID, links)
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "Venue created", slog.Int("venue_id", venue.ID))
	publish(ctx, s.events, s.logger, venueEvent(models.EventVenueCreated, venue.ID))

	return s.Get(ctx, venue.ID)
}

func (s *venueService) Update(ctx context.Context, id int, input VenueInput) (*models.Venue, error) {
	update, err := s.buildUpdate(ctx, input)
	if err != nil {
		return nil, err
	}
	links := sportLinks(input.SportData)

	if update.Len() == 0 && links == nil {
		return s.Get(ctx, id)
	}

	err = runInTx(ctx, s.db, s.logger, "venue.update", func(tx *sql.Tx) error {
		if _, err := s.venueRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}
		if err := s.venueRepo.Update(ctx, tx, id, update); err != nil {
			return err
		}
		return s.replaceSportLinks(ctx, tx, id, links)
	})
	if err != nil {
		return nil, handleRepositoryError(err)
	}

	publish(ctx, s.events, s.logger, venueEvent(models.EventVenueUpdated, id))

	return s.Get(ctx, id)
}

// buildUpdate turns the present fields of input into column assignments.
func (s *venueService) buildUpdate(ctx context.Context, input VenueInput) (repositories.VenueUpdate, error) {
	var u repositories.VenueUpdate

	if input.Name != nil {
		u.Set(repositories.ColName, *input.Name)
	}
	if input.Description != nil {
		u.Set(repositories.ColDescription, *input.Description)
	}
	if input.Address != nil {
		u.Set(repositories.ColAddress, *input.Address)
	}
	if input.MTRStation != nil {
		u.Set(repositories.ColMTRStation, *input.MTRStation)
	}
	if input.MTRExit != nil {
		u.Set(repositories.ColMTRExit, *input.MTRExit)
	}
	if input.WalkingDistance != nil {
		u.Set(repositories.ColWalkingDistance, *input.WalkingDistance)
	}
	if input.CeilingHeight != nil {
		u.Set(repositories.ColCeilingHeight, *input.CeilingHeight)
	}
	if input.StartingPrice != nil {
		u.Set(repositories.ColStartingPrice, *input.StartingPrice)
	}
	if input.Amenities != nil {
		u.Set(repositories.ColAmenities, models.StringList(*input.Amenities))
	}
	if input.WhatsApp != nil {
		u.Set(repositories.ColWhatsApp, *input.WhatsApp)
	}
	if input.SocialLink.Set {
		u.Set(repositories.ColSocialLink, input.SocialLink.Ptr())
	}
	if input.Coordinates != nil {
		u.Set(repositories.ColCoordinates, *input.Coordinates)
	}
	if input.SortOrder.Set {
		u.Set(repositories.ColSortOrder, input.SortOrder.Ptr())
	}
	if input.MembershipEnabled != nil {
		u.Set(repositories.ColMembershipEnabled, *input.MembershipEnabled)
	}
	if input.MembershipDescription.Set {
		u.Set(repositories.ColMembershipDescription, input.MembershipDescription.Ptr())
	}
	if input.MembershipJoinLink.Set {
		u.Set(repositories.ColMembershipJoinLink, input.MembershipJoinLink.Ptr())
	}

	if input.Images != nil || input.OrgIcon.Set || input.Pricing != nil {
		images, orgIcon, pricing := s.images.resolveVenueImages(ctx, venueImages{
			images:  input.Images,
			orgIcon: input.OrgIcon.Ptr(),
			pricing: input.Pricing,
		})
		if input.Images != nil {
			u.Set(repositories.ColImages, models.StringList(images))
		}
		if input.OrgIcon.Set {
			u.Set(repositories.ColOrgIcon, orgIcon)
		}
		if pricing != nil {
			u.Set(repositories.ColPricing, *pricing)
		}
	}

	if input.AdminPassword.Set {
		password, err := s.hashAdminPassword(input.AdminPassword)
		if err != nil {
			return u, err
		}
		u.Set(repositories.ColAdminPassword, password)
	}

	return u, nil
}

func (s *venueService) Delete(ctx context.Context, id int) error {
	err := runInTx(ctx, s.db, s.logger, "venue.delete", func(tx *sql.Tx) error {
		if err := s.venueRepo.DeleteSportLinks(ctx, tx, id); err != nil {
			return err
		}
		return s.venueRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return handleRepositoryError(err)
	}

	s.logger.InfoContext(ctx, "Venue deleted", slog.Int("venue_id", id))
	publish(ctx, s.events, s.logger, venueEvent(models.EventVenueDeleted, id))
	return nil
}

func (s *venueService) Reorder(ctx context.Context, input ReorderInput) error {
	if err := validateOrder(input.OrderedIDs); err != nil {
		return err
	}
	if input.SportID != nil && *input.SportID <= 0 {
		return fmt.Errorf("%w: sportId must be positive", ErrValidationFailed)
	}

	err := runInTx(ctx, s.db, s.logger, "venue.reorder", func(tx *sql.Tx) error {
		if input.SportID != nil {
			return s.venueRepo.SetSportSortOrders(ctx, tx, *input.SportID, input.OrderedIDs)
		}
		return s.venueRepo.SetSortOrders(ctx, tx, input.OrderedIDs)
	})
	if err != nil {
		return handleRepositoryError(err)
	}

	event := newEvent(models.EventVenuesReordered)
	event.SportID = input.SportID
	event.IDs = input.OrderedIDs
	publish(ctx, s.events, s.logger, event)
	return nil
}

func validateOrder(ids []int) error {
	if len(ids) == 0 {
		return ErrInvalidOrder
	}
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return fmt.Errorf("%w: invalid id %d", ErrInvalidOrder, id)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidOrder, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// hashAdminPassword: null or "" clears the password.
func (s *venueService) hashAdminPassword(in models.Optional[string]) (*string, error) {
	if !in.Set || !in.Valid || in.Value == "" {
		return nil, nil
	}
	hash, err := utils.HashPassword(in.Value, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &hash, nil
}

// replaceSportLinks is a no-op for nil links. On a database without sport
// tables the links are skipped and the venue write still commits.
func (s *venueService) replaceSportLinks(ctx context.Context, tx *sql.Tx, venueID int, links []models.SportLink) error {
	if links == nil {
		return nil
	}
	err := s.venueRepo.ReplaceSportLinks(ctx, tx, venueID, links)
	if errors.Is(err, repositories.ErrSportsUnavailable) {
		if len(links) > 0 {
			s.logger.WarnContext(ctx, "Skipping sport_data: sport tables are missing",
				slog.Int("venue_id", venueID), slog.Int("links", len(links)))
		}
		return nil
	}
	return err
}

// sportLinks returns nil when sport_data was absent and keeps the first entry
// per sport. A missing sort_order defaults to the entry's position.
func sportLinks(in *[]SportLinkInput) []models.SportLink {
	if in == nil {
		return nil
	}
	links := make([]models.SportLink, 0, len(*in))
	seen := make(map[int]struct{}, len(*in))
	for i, entry := range *in {
		if _, dup := seen[entry.SportID]; dup {
			continue
		}
		seen[entry.SportID] = struct{}{}
		order := i
		if entry.SortOrder != nil {
			order = *entry.SortOrder
		}
		links = append(links, models.SportLink{SportID: entry.SportID, SortOrder: order})
	}
	return links
}
