package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/court-finder/db"
	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/utils"
)

func TestCreateVenue(t *testing.T) {
	f := newFixture(t)

	v := mustCreate(t, f, VenueInput{
		Name:          ptr("Court A"),
		StartingPrice: ptr(100),
		Pricing:       &models.Pricing{Type: models.PricingText, Content: "$100/hr"},
	})

	assert.NotZero(t, v.ID)
	assert.Equal(t, "Court A", v.Name)
	assert.Equal(t, 100, v.StartingPrice)
	assert.Equal(t, models.StringList{}, v.Images)
	assert.Equal(t, []models.SportLink{}, v.SportData)
	assert.Equal(t, []models.EventType{models.EventVenueCreated}, f.events.types())

	other := mustCreate(t, f, VenueInput{Name: ptr("Court B")})
	assert.NotEqual(t, v.ID, other.ID)
}

func TestCreateVenueResolvesImages(t *testing.T) {
	f := newFixture(t)

	v := mustCreate(t, f, VenueInput{
		Name:    ptr("Pics"),
		Images:  &[]string{dataURI("one"), "https://cdn/two.jpg", "data:image/png;base64,%%%"},
		OrgIcon: models.Some(dataURI("icon")),
		Pricing: &models.Pricing{Type: models.PricingImage, Content: dataURI("prices")},
	})

	assert.Equal(t, models.StringList{"https://img.test/one", "https://cdn/two.jpg"}, v.Images)
	require.NotNil(t, v.OrgIcon)
	assert.Equal(t, "https://img.test/icon", *v.OrgIcon)
	assert.Equal(t, models.Pricing{Type: models.PricingImage, Content: "https://img.test/prices"}, v.Pricing)
	assert.Equal(t, 3, f.host.calls)
}

func TestFailedUploadsAreDropped(t *testing.T) {
	f := newFixture(t)
	f.host.fail = true

	v := mustCreate(t, f, VenueInput{
		Name:    ptr("Offline"),
		Images:  &[]string{dataURI("a"), "https://cdn/keep.jpg"},
		OrgIcon: models.Some(dataURI("icon")),
	})

	assert.Equal(t, models.StringList{"https://cdn/keep.jpg"}, v.Images)
	assert.Nil(t, v.OrgIcon)
}

func TestOrgIconIsCapped(t *testing.T) {
	f := newFixture(t)
	long := "https://cdn/" + strings.Repeat("x", 3000)

	v := mustCreate(t, f, VenueInput{OrgIcon: models.Some(long)})
	require.NotNil(t, v.OrgIcon)
	assert.Len(t, *v.OrgIcon, OrgIconMaxLength)
}

func TestUpdateEmptyPayloadIsNoOp(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	v := mustCreate(t, f, VenueInput{
		Name:          ptr("Same"),
		AdminPassword: models.Some("pw"),
		Coordinates:   &models.Coordinates{Lat: 22.28, Lng: 114.15},
	})

	before, err := f.venues.Get(ctx, v.ID)
	require.NoError(t, err)
	after, err := f.venues.Update(ctx, v.ID, VenueInput{})
	require.NoError(t, err)

	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("no-op update changed the row (-before +after):\n%s", diff)
	}
	assert.Equal(t, []models.EventType{models.EventVenueCreated}, f.events.types())
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	v := mustCreate(t, f, VenueInput{
		Name:        ptr("Old"),
		Address:     ptr("1 Court Rd"),
		SocialLink:  models.Some("https://ig/old"),
		Coordinates: &models.Coordinates{Lat: 1, Lng: 2},
	})

	got, err := f.venues.Update(ctx, v.ID, VenueInput{
		Name:        ptr("New"),
		SocialLink:  models.Null[string](),
		Coordinates: &models.Coordinates{Lat: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "1 Court Rd", got.Address)
	assert.Nil(t, got.SocialLink)
	// nested values are replaced whole
	assert.Equal(t, models.Coordinates{Lat: 3}, got.Coordinates)
}

func TestUpdateAdminPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	v := mustCreate(t, f, VenueInput{Name: ptr("Locked"), AdminPassword: models.Some("pw")})

	require.NotNil(t, v.AdminPassword)
	assert.True(t, utils.IsPasswordHash(*v.AdminPassword))
	assert.True(t, utils.CheckPassword("pw", *v.AdminPassword))

	got, err := f.venues.Update(ctx, v.ID, VenueInput{Name: ptr("Renamed")})
	require.NoError(t, err)
	require.NotNil(t, got.AdminPassword)
	assert.Equal(t, *v.AdminPassword, *got.AdminPassword)

	got, err = f.venues.Update(ctx, v.ID, VenueInput{AdminPassword: models.Some("")})
	require.NoError(t, err)
	assert.Nil(t, got.AdminPassword)

	got, err = f.venues.Update(ctx, v.ID, VenueInput{AdminPassword: models.Some("new")})
	require.NoError(t, err)
	require.NotNil(t, got.AdminPassword)
	assert.True(t, utils.CheckPassword("new", *got.AdminPassword))

	got, err = f.venues.Update(ctx, v.ID, VenueInput{AdminPassword: models.Null[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.AdminPassword)
}

func TestUpdateUnknownVenue(t *testing.T) {
	f := newFixture(t)

	_, err := f.venues.Update(context.Background(), 404, VenueInput{Name: ptr("x")})
	assert.ErrorIs(t, err, ErrVenueNotFound)

	_, err = f.venues.Update(context.Background(), 404, VenueInput{})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUpdateSportData(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	tennis, err := f.sports.CreateSport(ctx, SportInput{Name: "Tennis"})
	require.NoError(t, err)
	padel, err := f.sports.CreateSport(ctx, SportInput{Name: "Padel"})
	require.NoError(t, err)

	v := mustCreate(t, f, VenueInput{
		Name:      ptr("Club"),
		SportData: &[]SportLinkInput{{SportID: tennis.ID}, {SportID: padel.ID}, {SportID: tennis.ID}},
	})
	require.Len(t, v.SportData, 2)
	assert.Equal(t, tennis.ID, v.SportData[0].SportID)
	assert.Equal(t, 1, v.SportData[1].SortOrder)

	got, err := f.venues.Update(ctx, v.ID, VenueInput{SportData: &[]SportLinkInput{{SportID: padel.ID, SortOrder: ptr(7)}}})
	require.NoError(t, err)
	require.Len(t, got.SportData, 1)
	assert.Equal(t, "padel", got.SportData[0].Slug)
	assert.Equal(t, 7, got.SportData[0].SortOrder)

	got, err = f.venues.Update(ctx, v.ID, VenueInput{SportData: &[]SportLinkInput{}})
	require.NoError(t, err)
	assert.Empty(t, got.SportData)

	_, err = f.venues.Update(ctx, v.ID, VenueInput{Name: ptr("Renamed"), SportData: &[]SportLinkInput{{SportID: 9999}}})
	assert.ErrorIs(t, err, ErrUnknownSport)
	// the rename rolled back with the failed link
	after, err := f.venues.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "Club", after.Name)
}

func TestSportDataWithoutSportTables(t *testing.T) {
	ctx := context.Background()
	f := newFixtureWithCaps(t, db.Capabilities{})

	v := mustCreate(t, f, VenueInput{Name: ptr("Court A"), SportData: &[]SportLinkInput{{SportID: 1}}})
	assert.Equal(t, "Court A", v.Name)
	assert.Equal(t, []models.SportLink{}, v.SportData)

	got, err := f.venues.Update(ctx, v.ID, VenueInput{Name: ptr("Court B"), SportData: &[]SportLinkInput{{SportID: 2}}})
	require.NoError(t, err)
	assert.Equal(t, "Court B", got.Name)

	venues, err := f.venues.List(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "Court B", venues[0].Name)
}

func TestDeleteVenue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s, err := f.sports.CreateSport(ctx, SportInput{Name: "Squash"})
	require.NoError(t, err)
	v := mustCreate(t, f, VenueInput{Name: ptr("Gone"), SportData: &[]SportLinkInput{{SportID: s.ID}}})

	require.NoError(t, f.venues.Delete(ctx, v.ID))

	_, err = f.venues.Get(ctx, v.ID)
	assert.ErrorIs(t, err, ErrVenueNotFound)
	links, err := f.repo.ListSportLinks(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, links)

	assert.ErrorIs(t, f.venues.Delete(ctx, v.ID), ErrVenueNotFound)
}

func listIDs(t *testing.T, f *fixture) []int {
	t.Helper()
	venues, err := f.venues.List(context.Background())
	require.NoError(t, err)
	ids := make([]int, len(venues))
	for i, v := range venues {
		ids[i] = v.ID
	}
	return ids
}

func TestReorder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, name := range []string{"A", "B", "C"} {
		mustCreate(t, f, VenueInput{Name: ptr(name)})
	}

	require.NoError(t, f.venues.Reorder(ctx, ReorderInput{OrderedIDs: []int{3, 1, 2}}))
	assert.Equal(t, []int{3, 1, 2}, listIDs(t, f))

	venues, err := f.venues.List(ctx)
	require.NoError(t, err)
	for i, v := range venues {
		require.NotNil(t, v.SortOrder)
		assert.Equal(t, i, *v.SortOrder)
	}
}

func TestReorderIsAtomic(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, name := range []string{"A", "B", "C"} {
		mustCreate(t, f, VenueInput{Name: ptr(name)})
	}
	require.NoError(t, f.venues.Reorder(ctx, ReorderInput{OrderedIDs: []int{2, 3, 1}}))

	err := f.venues.Reorder(ctx, ReorderInput{OrderedIDs: []int{1, 2, 99, 3}})
	assert.ErrorIs(t, err, ErrVenueNotFound)
	assert.Equal(t, []int{2, 3, 1}, listIDs(t, f))
}

func TestReorderValidation(t *testing.T) {
	f := newFixture(t)
	for _, ids := range [][]int{nil, {1, 1}, {0, 2}, {-3}} {
		err := f.venues.Reorder(context.Background(), ReorderInput{OrderedIDs: ids})
		assert.ErrorIs(t, err, ErrInvalidOrder, "%v", ids)
	}
	err := f.venues.Reorder(context.Background(), ReorderInput{OrderedIDs: []int{1}, SportID: ptr(0)})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestReorderWithinSport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s, err := f.sports.CreateSport(ctx, SportInput{Name: "Badminton"})
	require.NoError(t, err)
	a := mustCreate(t, f, VenueInput{Name: ptr("A"), SportData: &[]SportLinkInput{{SportID: s.ID}}})
	b := mustCreate(t, f, VenueInput{Name: ptr("B"), SportData: &[]SportLinkInput{{SportID: s.ID}}})

	require.NoError(t, f.venues.Reorder(ctx, ReorderInput{OrderedIDs: []int{b.ID, a.ID}, SportID: &s.ID}))

	gotA, err := f.venues.Get(ctx, a.ID)
	require.NoError(t, err)
	gotB, err := f.venues.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotA.SportData[0].SortOrder)
	assert.Equal(t, 0, gotB.SportData[0].SortOrder)
	// global order untouched
	assert.Nil(t, gotA.SortOrder)

	types := f.events.types()
	assert.Equal(t, models.EventVenuesReordered, types[len(types)-1])
}
