package services

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/court-finder/db"
	"github.com/Dosada05/court-finder/db/dbtest"
	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/repositories"
	"github.com/Dosada05/court-finder/storage"
)

var testLogger = slog.New(slog.DiscardHandler)

type fakeHost struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (h *fakeHost) UploadImage(_ context.Context, img *storage.DataURI) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if h.fail {
		return "", errors.New("host down")
	}
	return "https://img.test/" + string(img.Data), nil
}

type recorder struct {
	mu     sync.Mutex
	events []models.VenueEvent
}

func (r *recorder) Publish(_ context.Context, e models.VenueEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []models.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

type fixture struct {
	venues VenueService
	sports SportService
	auth   AuthService
	repo   repositories.VenueRepository
	host   *fakeHost
	events *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWithCaps(t, db.Capabilities{SportTables: true, SportNameZh: true})
}

func newFixtureWithCaps(t *testing.T, caps db.Capabilities) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	venueRepo := repositories.NewVenueRepository(conn, db.SQLite, caps)
	sportRepo := repositories.NewSportRepository(conn, db.SQLite, caps)

	host := &fakeHost{}
	events := &recorder{}

	vs := NewVenueService(conn, venueRepo, NewImageProcessor(host, testLogger), events, testLogger)
	vs.(*venueService).bcryptCost = bcrypt.MinCost
	as := NewAuthService(venueRepo, "super-secret", testLogger)
	as.(*authService).bcryptCost = bcrypt.MinCost

	return &fixture{
		venues: vs,
		sports: NewSportService(conn, sportRepo, events, testLogger),
		auth:   as,
		repo:   venueRepo,
		host:   host,
		events: events,
	}
}

func dataURI(payload string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(payload))
}

func ptr[T any](v T) *T { return &v }

func mustCreate(t *testing.T, f *fixture, input VenueInput) *models.Venue {
	t.Helper()
	v, err := f.venues.Create(context.Background(), input)
	require.NoError(t, err)
	return v
}
