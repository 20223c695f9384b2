package importer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userCatalog/internal/importer"
	"userCatalog/internal/randomuser"
	"userCatalog/internal/testutil"
	"userCatalog/models"
	"userCatalog/repository"
)

func newRepo(t *testing.T, name string) *repository.UserRepository {
	t.Helper()
	return repository.NewUserRepository(testutil.OpenInMemoryDB(t, name))
}

func count(t *testing.T, repo *repository.UserRepository) int {
	t.Helper()
	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	return n
}

func TestImport_PersistAllWritesEveryResult(t *testing.T) {
	repo := newRepo(t, "importall")
	fetcher := &testutil.FakeFetcher{}
	im := importer.New(fetcher, repo, importer.Options{})

	written, err := im.Import(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, written)
	assert.Equal(t, 5, count(t, repo))
	assert.Equal(t, []int{5}, fetcher.Calls())

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "First0", all[0].FirstName)
	assert.Equal(t, "Oslo", all[4].City)
}

func TestImport_PersistLastWritesOnlyLastResult(t *testing.T) {
	repo := newRepo(t, "importlast")
	im := importer.New(&testutil.FakeFetcher{}, repo, importer.Options{Mode: importer.PersistLast})

	written, err := im.Import(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "First4", all[0].FirstName)
}

func TestImport_NeverExceedsRequested(t *testing.T) {
	for _, mode := range []importer.PersistMode{importer.PersistAll, importer.PersistLast} {
		t.Run(mode.String(), func(t *testing.T) {
			repo := newRepo(t, "importbound"+mode.String())
			im := importer.New(&testutil.FakeFetcher{}, repo, importer.Options{Mode: mode})

			before := count(t, repo)
			_, err := im.Import(context.Background(), 3)
			require.NoError(t, err)
			after := count(t, repo)
			assert.LessOrEqual(t, after-before, 3)
			assert.GreaterOrEqual(t, after-before, 1)
		})
	}
}

func TestImport_DropsSurplusResults(t *testing.T) {
	repo := newRepo(t, "importsurplus")
	im := importer.New(&testutil.FakeFetcher{Results: testutil.Results(5)}, repo, importer.Options{})

	written, err := im.Import(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Equal(t, 2, count(t, repo))

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "First0", all[0].FirstName)
	assert.Equal(t, "First1", all[1].FirstName)
}

func TestImport_PersistLastUsesLastRequestedResult(t *testing.T) {
	repo := newRepo(t, "importsurpluslast")
	im := importer.New(&testutil.FakeFetcher{Results: testutil.Results(5)}, repo, importer.Options{Mode: importer.PersistLast})

	written, err := im.Import(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "First1", all[0].FirstName)
}

func TestImport_NoDeduplication(t *testing.T) {
	repo := newRepo(t, "importdup")
	im := importer.New(&testutil.FakeFetcher{Results: testutil.Results(2)}, repo, importer.Options{})

	_, err := im.Import(context.Background(), 2)
	require.NoError(t, err)
	_, err = im.Import(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, count(t, repo))
}

func TestImport_FetchErrorLeavesStoreUnchanged(t *testing.T) {
	repo := newRepo(t, "importfetcherr")
	testutil.SeedUsers(t, repo, testutil.John())
	fetchErr := &randomuser.FetchError{Op: "get", StatusCode: 503, Err: errors.New("busy")}
	im := importer.New(&testutil.FakeFetcher{Err: fetchErr}, repo, importer.Options{})

	_, err := im.Import(context.Background(), 10)
	var fe *randomuser.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 1, count(t, repo))
}

func TestImport_InvalidCount(t *testing.T) {
	repo := newRepo(t, "importinvalid")
	fetcher := &testutil.FakeFetcher{}
	im := importer.New(fetcher, repo, importer.Options{MaxCount: 10})

	for _, n := range []int{0, -3, 11} {
		_, err := im.Import(context.Background(), n)
		assert.ErrorIs(t, err, importer.ErrInvalidCount, "n=%d", n)
	}
	assert.Empty(t, fetcher.Calls(), "invalid counts never reach the remote API")
	assert.NoError(t, im.ValidateCount(10))
}

func TestImport_EmptyResultList(t *testing.T) {
	repo := newRepo(t, "importempty")
	im := importer.New(&testutil.FakeFetcher{Results: []randomuser.Result{}}, repo, importer.Options{Mode: importer.PersistLast})

	written, err := im.Import(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestImport_AgainstHTTPServer(t *testing.T) {
	repo := newRepo(t, "importhttp")
	srv := testutil.NewRandomUserServer(t)
	im := importer.New(randomuser.NewClient(srv.URL, time.Second), repo, importer.Options{})

	written, err := im.Import(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, written)
	assert.Equal(t, 7, count(t, repo))
}

func TestSeedIfEmpty(t *testing.T) {
	repo := newRepo(t, "importseed")
	fetcher := &testutil.FakeFetcher{}
	im := importer.New(fetcher, repo, importer.Options{})

	written, err := im.SeedIfEmpty(context.Background(), 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, written)

	// A populated store is left alone.
	written, err = im.SeedIfEmpty(context.Background(), 1000)
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Equal(t, []int{1000}, fetcher.Calls())

	written, err = im.SeedIfEmpty(context.Background(), 0)
	require.NoError(t, err)
	assert.Zero(t, written)
}

func TestFromResult(t *testing.T) {
	r := testutil.Results(1)[0]
	u := importer.FromResult(&r)
	assert.Equal(t, models.User{
		Gender: "female", FirstName: "First0", LastName: "Last0", Phone: "555-0000",
		Email: "user0@example.com", Country: "Norway", City: "Oslo",
		Thumbnail: "http://example.com/t0.jpg", LargePicture: "http://example.com/l0.jpg",
	}, *u)
}

func TestParsePersistMode(t *testing.T) {
	m, err := importer.ParsePersistMode("last")
	require.NoError(t, err)
	assert.Equal(t, importer.PersistLast, m)

	m, err = importer.ParsePersistMode("")
	require.NoError(t, err)
	assert.Equal(t, importer.PersistAll, m)

	_, err = importer.ParsePersistMode("first")
	assert.Error(t, err)
}
