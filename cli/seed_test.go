package cli

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/court-finder/db"
	"github.com/Dosada05/court-finder/db/dbtest"
	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/repositories"
	"github.com/Dosada05/court-finder/services"
)

const seedYAML = `
sports:
  - name: Pickleball
  - name: Badminton
    name_zh: 羽毛球
venues:
  - name: Kwun Tong Courts
    address: 1 Hoi Bun Road
    mtr_station: Kwun Tong
    mtr_exit: A2
    walking_distance: 5
    ceiling_height: 9.5
    starting_price: 120
    pricing:
      type: text
      content: $120/hr
    images: [https://img.example/1.jpg]
    amenities: [showers, lockers]
    coordinates: {lat: 22.31, lng: 114.22}
    admin_password: kt-admin
    membership:
      enabled: true
      join_link: https://join.example
    sports: [badminton, Pickleball]
  - name: Rooftop Court
    sort_order: 0
`

func newSeedServices(t *testing.T) (services.SportService, services.VenueService) {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	conn := dbtest.Open(t)
	caps := db.DetectCapabilities(context.Background(), conn)
	venueService := services.NewVenueService(conn, repositories.NewVenueRepository(conn, db.SQLite, caps),
		services.NewImageProcessor(nil, logger), nil, logger)
	sportService := services.NewSportService(conn, repositories.NewSportRepository(conn, db.SQLite, caps), nil, logger)
	return sportService, venueService
}

func TestParseSeedFile(t *testing.T) {
	f, err := parseSeedFile(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, f.Sports, 2)
	require.Len(t, f.Venues, 2)

	v := f.Venues[0]
	assert.Equal(t, "Kwun Tong Courts", v.Name)
	assert.Equal(t, 9.5, v.CeilingHeight)
	require.NotNil(t, v.Pricing)
	assert.Equal(t, models.PricingText, v.Pricing.Type)
	assert.Equal(t, &models.Coordinates{Lat: 22.31, Lng: 114.22}, v.Coordinates)
	require.NotNil(t, v.Membership)
	assert.True(t, v.Membership.Enabled)

	empty, err := parseSeedFile(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Venues)

	_, err = parseSeedFile(strings.NewReader("venues:\n  - address: nowhere\n"))
	assert.ErrorContains(t, err, "has no name")

	_, err = parseSeedFile(strings.NewReader("venue:\n  - name: typo\n"))
	assert.Error(t, err)
}

func TestSeedApply(t *testing.T) {
	sports, venues := newSeedServices(t)
	ctx := context.Background()

	f, err := parseSeedFile(strings.NewReader(seedYAML))
	require.NoError(t, err)

	res, err := f.apply(ctx, sports, venues)
	require.NoError(t, err)
	assert.Equal(t, seedResult{SportsCreated: 2, VenuesCreated: 2}, res)

	list, err := venues.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Rooftop Court", list[0].Name)

	kt := list[1]
	assert.Equal(t, models.StringList{"https://img.example/1.jpg"}, kt.Images)
	assert.True(t, kt.MembershipEnabled)
	require.Len(t, kt.SportData, 2)
	assert.Equal(t, "badminton", kt.SportData[0].Slug)
	assert.Equal(t, "pickleball", kt.SportData[1].Slug)

	t.Run("existing sports are reused", func(t *testing.T) {
		res, err := f.apply(ctx, sports, venues)
		require.NoError(t, err)
		assert.Equal(t, 0, res.SportsCreated)

		all, err := sports.GetAllSports(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("unknown sport", func(t *testing.T) {
		bad, err := parseSeedFile(strings.NewReader("venues:\n  - name: X\n    sports: [curling]\n"))
		require.NoError(t, err)
		_, err = bad.apply(ctx, sports, venues)
		assert.ErrorContains(t, err, `unknown sport "curling"`)
	})
}
