package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/court-finder/models"
	"github.com/Dosada05/court-finder/utils"
)

func TestLoginSharedPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := mustCreate(t, f, VenueInput{Name: ptr("A"), AdminPassword: models.Some("shared")})
	mustCreate(t, f, VenueInput{Name: ptr("B"), AdminPassword: models.Some("other")})
	c := mustCreate(t, f, VenueInput{Name: ptr("C"), AdminPassword: models.Some("shared")})
	mustCreate(t, f, VenueInput{Name: ptr("D")})

	scope, err := f.auth.Login(ctx, "shared")
	require.NoError(t, err)
	assert.False(t, scope.SuperAdmin)
	assert.Equal(t, []int{a.ID, c.ID}, scope.VenueIDs)

	_, err = f.auth.Login(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "")
	assert.ErrorIs(t, err, ErrPasswordRequired)
}

func TestLoginSuperAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := mustCreate(t, f, VenueInput{Name: ptr("A")})
	b := mustCreate(t, f, VenueInput{Name: ptr("B")})

	scope, err := f.auth.Login(ctx, "super-secret")
	require.NoError(t, err)
	assert.True(t, scope.SuperAdmin)
	assert.Equal(t, []int{a.ID, b.ID}, scope.VenueIDs)

	assert.True(t, f.auth.IsSuperAdminSecret("super-secret"))
	assert.False(t, f.auth.IsSuperAdminSecret("super"))
	assert.False(t, f.auth.IsSuperAdminSecret(""))
}

func TestLegacyPlaintextPasswords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	v := mustCreate(t, f, VenueInput{Name: ptr("Legacy")})
	legacy := "plain"
	require.NoError(t, f.repo.SetAdminPassword(ctx, nil, v.ID, &legacy))

	scope, err := f.auth.Login(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, []int{v.ID}, scope.VenueIDs)

	n, err := f.auth.HashLegacyPasswords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := f.venues.Get(ctx, v.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.AdminPassword)
	assert.True(t, utils.IsPasswordHash(*stored.AdminPassword))

	scope, err = f.auth.Login(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, []int{v.ID}, scope.VenueIDs)

	n, err = f.auth.HashLegacyPasswords(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
