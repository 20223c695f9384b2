package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"userCatalog/internal/db"
	"userCatalog/internal/randomuser"
	"userCatalog/models"
	"userCatalog/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// The DB is closed via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so every pooled connection sees the same database.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// John and Jane are the two fixture users most tests seed.
func John() *models.User {
	return &models.User{
		Gender: "male", FirstName: "John", LastName: "Doe", Phone: "123-456-7890",
		Email: "john.doe@example.com", Country: "USA", City: "New York",
		Thumbnail: "http://example.com/thumbnail.jpg", LargePicture: "http://example.com/large.jpg",
	}
}

func Jane() *models.User {
	return &models.User{
		Gender: "female", FirstName: "Jane", LastName: "Smith", Phone: "987-654-3210",
		Email: "jane.smith@example.com", Country: "Canada", City: "Toronto",
		Thumbnail: "http://example.com/thumbnail2.jpg", LargePicture: "http://example.com/large2.jpg",
	}
}

// SeedUsers inserts the given users and returns them with IDs set.
func SeedUsers(t *testing.T, repo repository.UserRepositoryI, users ...*models.User) []*models.User {
	t.Helper()
	if _, err := repo.CreateBatch(context.Background(), users); err != nil {
		t.Fatalf("seed users: %v", err)
	}
	return users
}

// Results builds n distinct API results named "First<i> Last<i>".
func Results(n int) []randomuser.Result {
	out := make([]randomuser.Result, n)
	for i := range out {
		r := &out[i]
		r.Gender = "female"
		r.Name.First = "First" + strconv.Itoa(i)
		r.Name.Last = "Last" + strconv.Itoa(i)
		r.Phone = fmt.Sprintf("555-%04d", i)
		r.Email = fmt.Sprintf("user%d@example.com", i)
		r.Location.Country = "Norway"
		r.Location.City = "Oslo"
		r.Picture.Thumbnail = fmt.Sprintf("http://example.com/t%d.jpg", i)
		r.Picture.Large = fmt.Sprintf("http://example.com/l%d.jpg", i)
	}
	return out
}

// FakeFetcher serves canned results. When Results is nil it generates as many
// as requested.
type FakeFetcher struct {
	Results []randomuser.Result
	Err     error

	mu    sync.Mutex
	calls []int
}

func (f *FakeFetcher) Fetch(_ context.Context, n int) ([]randomuser.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, n)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Results != nil {
		return f.Results, nil
	}
	return Results(n), nil
}

// Calls returns the counts Fetch was called with.
func (f *FakeFetcher) Calls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.calls...)
}

// NewRandomUserServer starts an httptest server that answers /api/?results=n
// like the public API. It is closed via t.Cleanup.
func NewRandomUserServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/" {
			http.NotFound(w, r)
			return
		}
		n, err := strconv.Atoi(r.URL.Query().Get("results"))
		if err != nil || n < 1 {
			n = 1
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"results": Results(n)})
	}))
	t.Cleanup(srv.Close)
	return srv
}
