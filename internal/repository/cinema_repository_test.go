package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCinemaRepo(t *testing.T) *CinemaRepo {
	t.Helper()
	repo := NewCinemaRepo(testDB(t))
	repo.now = fixedClock()
	return repo
}

func TestCinemaCreateValidatesPrice(t *testing.T) {
	repo := newTestCinemaRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Odeon", "1 Main St", -1, nil)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	id, err := repo.Create(ctx, "Odeon", "1 Main St", 0, nil)
	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestCinemaTagsRoundTrip(t *testing.T) {
	repo := newTestCinemaRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, "Grand", "2 High St", 12.5, []string{"3D", "IMAX"})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"3D", "IMAX"}, got.Tags, "order and values must survive storage")

	// nil tags come back as an empty list, not null.
	id2, err := repo.Create(ctx, "Plain", "3 Low St", 5, nil)
	require.NoError(t, err)
	got2, err := repo.GetByID(ctx, id2)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got2.Tags)
}

func TestCinemaUpdatePartial(t *testing.T) {
	repo := newTestCinemaRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, "Grand", "2 High St", 12.5, []string{"3D"})
	require.NoError(t, err)
	before, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	newPrice := 15.0
	ok, err := repo.Update(ctx, id, CinemaUpdate{Price: &newPrice})
	require.NoError(t, err)
	require.True(t, ok)

	after, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before.Name, after.Name)
	assert.Equal(t, before.Address, after.Address)
	assert.Equal(t, before.Tags, after.Tags)
	assert.Equal(t, newPrice, after.Price)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Greater(t, after.UpdatedAt, before.UpdatedAt, "updated_at must advance")
}

func TestCinemaUpdateTouchSemantics(t *testing.T) {
	repo := newTestCinemaRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, "Grand", "2 High St", 12.5, nil)
	require.NoError(t, err)
	before, err := repo.GetByID(ctx, id)
	require.NoError(t, err)

	// No business field supplied: the call still succeeds and touches
	// updated_at.
	ok, err := repo.Update(ctx, id, CinemaUpdate{})
	require.NoError(t, err)
	assert.True(t, ok)

	after, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Greater(t, after.UpdatedAt, before.UpdatedAt)

	// Unknown id is the only way to get false.
	ok, err = repo.Update(ctx, 9999, CinemaUpdate{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCinemaUpdateRejectsNegativePrice(t *testing.T) {
	repo := newTestCinemaRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, "Grand", "2 High St", 12.5, nil)
	require.NoError(t, err)

	bad := -3.0
	_, err = repo.Update(ctx, id, CinemaUpdate{Price: &bad})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	// Nothing was written, not even the timestamp.
	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 12.5, got.Price)
	assert.Equal(t, got.CreatedAt, got.UpdatedAt)
}

func TestCinemaListAllNewestFirst(t *testing.T) {
	repo := newTestCinemaRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, "Alpha", "1 St", 1, nil)
	require.NoError(t, err)
	second, err := repo.Create(ctx, "Beta", "2 St", 2, nil)
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second, all[0].ID)
	assert.Equal(t, first, all[1].ID)
}

func TestCinemaSearchFilters(t *testing.T) {
	repo := newTestCinemaRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "Grand Palace", "1 River Road", 10, []string{"IMAX", "cat"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Tiny Screen", "2 Palace Avenue", 5, []string{"category"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Budget Box", "3 Side Street", 2, nil)
	require.NoError(t, err)

	// Keyword matches name or address, case-insensitively.
	got, err := repo.Search(ctx, CinemaSearch{Keyword: "palace"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Price bounds are inclusive.
	min, max := 5.0, 10.0
	got, err = repo.Search(ctx, CinemaSearch{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Tag match is exact membership: "cat" never matches "category".
	got, err = repo.Search(ctx, CinemaSearch{Tag: "cat"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grand Palace", got[0].Name)

	// Filters are conjunctive.
	lo := 8.0
	got, err = repo.Search(ctx, CinemaSearch{Keyword: "palace", MinPrice: &lo})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Grand Palace", got[0].Name)

	// No filters behaves like ListAll, newest first.
	got, err = repo.Search(ctx, CinemaSearch{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Budget Box", got[0].Name)
}

func TestCinemaDelete(t *testing.T) {
	repo := newTestCinemaRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, "Grand", "2 High St", 12.5, nil)
	require.NoError(t, err)

	ok, err := repo.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrCinemaNotFound)

	ok, err = repo.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)
}
