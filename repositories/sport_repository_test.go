package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/court-finder/db"
	"github.com/Dosada05/court-finder/db/dbtest"
	"github.com/Dosada05/court-finder/models"
)

func TestSportCRUD(t *testing.T) {
	ctx := context.Background()
	_, _, repo := newRepos(t)

	tennis := models.Sport{Name: "Tennis", Slug: "tennis"}
	badminton := models.Sport{Name: "Badminton", Slug: "badminton", NameZh: strPtr("羽毛球")}
	require.NoError(t, repo.Create(ctx, &tennis))
	require.NoError(t, repo.Create(ctx, &badminton))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Badminton", all[0].Name)
	assert.Equal(t, "Tennis", all[1].Name)

	tennis.Name = "Table Tennis"
	tennis.Slug = "table-tennis"
	require.NoError(t, repo.Update(ctx, &tennis))
	got, err := repo.GetByID(ctx, tennis.ID)
	require.NoError(t, err)
	assert.Equal(t, "table-tennis", got.Slug)

	missing := models.Sport{ID: 999, Name: "x", Slug: "x"}
	assert.ErrorIs(t, repo.Update(ctx, &missing), ErrSportNotFound)

	require.NoError(t, repo.Delete(ctx, nil, tennis.ID))
	_, err = repo.GetByID(ctx, tennis.ID)
	assert.ErrorIs(t, err, ErrSportNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, nil, tennis.ID), ErrSportNotFound)
}

func TestSportWithoutNameZhColumn(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	repo := NewSportRepository(conn, db.SQLite, db.Capabilities{SportTables: true})

	s := models.Sport{Name: "Golf", Slug: "golf", NameZh: strPtr("高爾夫")}
	require.NoError(t, repo.Create(ctx, &s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got.NameZh)
}

func TestSportDeleteLinks(t *testing.T) {
	ctx := context.Background()
	_, venues, repo := newRepos(t)
	v := mustCreateVenue(t, venues, "Hall")

	s := models.Sport{Name: "Volleyball", Slug: "volleyball"}
	require.NoError(t, repo.Create(ctx, &s))
	require.NoError(t, venues.ReplaceSportLinks(ctx, nil, v.ID, []models.SportLink{{SportID: s.ID}}))

	require.NoError(t, repo.DeleteLinks(ctx, nil, s.ID))
	require.NoError(t, repo.Delete(ctx, nil, s.ID))

	links, err := venues.ListSportLinks(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, links[v.ID])

	// venue survives
	_, err = venues.GetByID(ctx, nil, v.ID)
	assert.NoError(t, err)
}
