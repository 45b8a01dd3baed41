package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dosada05/court-finder/config"
	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/repositories"
	"github.com/Dosada05/court-finder/services"
	"github.com/Dosada05/court-finder/utils"
)

// seedFile is the YAML layout accepted by `court-finder seed`.
type seedFile struct {
	Sports []seedSport `yaml:"sports"`
	Venues []seedVenue `yaml:"venues"`
}

type seedSport struct {
	Name   string  `yaml:"name"`
	NameZh *string `yaml:"name_zh"`
}

type seedVenue struct {
	Name            string              `yaml:"name"`
	Description     string              `yaml:"description"`
	Address         string              `yaml:"address"`
	MTRStation      string              `yaml:"mtr_station"`
	MTRExit         string              `yaml:"mtr_exit"`
	WalkingDistance int                 `yaml:"walking_distance"`
	CeilingHeight   float64             `yaml:"ceiling_height"`
	StartingPrice   int                 `yaml:"starting_price"`
	Pricing         *models.Pricing     `yaml:"pricing"`
	Images          []string            `yaml:"images"`
	Amenities       []string            `yaml:"amenities"`
	WhatsApp        string              `yaml:"whatsapp"`
	SocialLink      *string             `yaml:"social_link"`
	Coordinates     *models.Coordinates `yaml:"coordinates"`
	SortOrder       *int                `yaml:"sort_order"`
	AdminPassword   *string             `yaml:"admin_password"`
	Membership      *struct {
		Enabled     bool    `yaml:"enabled"`
		Description *string `yaml:"description"`
		JoinLink    *string `yaml:"join_link"`
	} `yaml:"membership"`
	// Sports are names or slugs of sports from the same file or the database.
	Sports []string `yaml:"sports"`
}

type seedResult struct {
	SportsCreated int
	VenuesCreated int
}

func parseSeedFile(r io.Reader) (*seedFile, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}
	for i, v := range f.Venues {
		if strings.TrimSpace(v.Name) == "" {
			return nil, fmt.Errorf("invalid seed file: venue #%d has no name", i+1)
		}
	}
	return &f, nil
}

func (v seedVenue) input(sportIDs map[string]int) (services.VenueInput, error) {
	in := services.VenueInput{
		Name:            &v.Name,
		Description:     &v.Description,
		Address:         &v.Address,
		MTRStation:      &v.MTRStation,
		MTRExit:         &v.MTRExit,
		WalkingDistance: &v.WalkingDistance,
		CeilingHeight:   &v.CeilingHeight,
		StartingPrice:   &v.StartingPrice,
		Pricing:         v.Pricing,
		Coordinates:     v.Coordinates,
		WhatsApp:        &v.WhatsApp,
	}
	if v.Images != nil {
		in.Images = &v.Images
	}
	if v.Amenities != nil {
		in.Amenities = &v.Amenities
	}
	if v.SocialLink != nil {
		in.SocialLink = models.Some(*v.SocialLink)
	}
	if v.SortOrder != nil {
		in.SortOrder = models.Some(*v.SortOrder)
	}
	if v.AdminPassword != nil {
		in.AdminPassword = models.Some(*v.AdminPassword)
	}
	if m := v.Membership; m != nil {
		in.MembershipEnabled = &m.Enabled
		if m.Description != nil {
			in.MembershipDescription = models.Some(*m.Description)
		}
		if m.JoinLink != nil {
			in.MembershipJoinLink = models.Some(*m.JoinLink)
		}
	}

	if len(v.Sports) > 0 {
		links := make([]services.SportLinkInput, 0, len(v.Sports))
		for _, name := range v.Sports {
			id, ok := sportIDs[utils.SportSlug(name)]
			if !ok {
				return in, fmt.Errorf("venue %q references unknown sport %q", v.Name, name)
			}
			links = append(links, services.SportLinkInput{SportID: id})
		}
		in.SportData = &links
	}
	return in, nil
}

// apply creates the sports missing from the database (matched by slug) and
// then every venue.
func (f *seedFile) apply(ctx context.Context, sports services.SportService, venues services.VenueService) (seedResult, error) {
	var res seedResult

	existing, err := sports.GetAllSports(ctx)
	if err != nil {
		return res, err
	}
	sportIDs := make(map[string]int, len(existing)+len(f.Sports))
	for _, s := range existing {
		sportIDs[s.Slug] = s.ID
	}

	for _, s := range f.Sports {
		slug := utils.SportSlug(s.Name)
		if _, ok := sportIDs[slug]; ok {
			continue
		}
		created, err := sports.CreateSport(ctx, services.SportInput{Name: s.Name, NameZh: s.NameZh})
		if err != nil {
			return res, fmt.Errorf("failed to create sport %q: %w", s.Name, err)
		}
		sportIDs[created.Slug] = created.ID
		res.SportsCreated++
	}

	for _, v := range f.Venues {
		in, err := v.input(sportIDs)
		if err != nil {
			return res, err
		}
		if _, err := venues.Create(ctx, in); err != nil {
			return res, fmt.Errorf("failed to create venue %q: %w", v.Name, err)
		}
		res.VenuesCreated++
	}
	return res, nil
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sports and venues from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer fh.Close()
			seed, err := parseSeedFile(fh)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			conn, dialect, caps, err := openDatabase(cmd.Context(), cfg, logger, false)
			if err != nil {
				return err
			}
			defer closeDatabase(conn, logger)

			venueService := services.NewVenueService(conn, repositories.NewVenueRepository(conn, dialect, caps),
				services.NewImageProcessor(nil, logger), nil, logger)
			sportService := services.NewSportService(conn, repositories.NewSportRepository(conn, dialect, caps), nil, logger)

			res, err := seed.apply(cmd.Context(), sportService, venueService)
			if err != nil {
				return err
			}
			logger.Info("seed applied", slog.Int("sports", res.SportsCreated), slog.Int("venues", res.VenuesCreated))
			fmt.Fprintf(cmd.OutOrStdout(), "created %d sport(s) and %d venue(s)\n", res.SportsCreated, res.VenuesCreated)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "venues.yaml", "YAML file with sports and venues")
	return cmd
}
