// Package importer copies generated profiles from the remote API into the local store.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"

	"userCatalog/internal/randomuser"
	"userCatalog/models"
)

// PersistMode selects how a fetched batch is written.
type PersistMode int

const (
	// PersistAll writes one row per fetched result in a single transaction.
	PersistAll PersistMode = iota
	// PersistLast writes only the last constructed record of the batch, so an
	// import of N grows the store by at most one row.
	PersistLast
)

// ParsePersistMode maps the config values "all" and "last" to a PersistMode.
func ParsePersistMode(s string) (PersistMode, error) {
	switch s {
	case "", "all":
		return PersistAll, nil
	case "last":
		return PersistLast, nil
	}
	return PersistAll, fmt.Errorf("unknown persist mode %q", s)
}

func (m PersistMode) String() string {
	if m == PersistLast {
		return "last"
	}
	return "all"
}

// DefaultMaxCount is the largest batch the public randomuser API serves.
const DefaultMaxCount = 5000

// ErrInvalidCount is returned for an import count outside 1..MaxCount.
var ErrInvalidCount = errors.New("invalid number of users")

// Store is the write side the importer needs.
type Store interface {
	CreateBatch(ctx context.Context, users []*models.User) (int, error)
	Count(ctx context.Context) (int, error)
}

// Options configure an Importer. Zero values select PersistAll and DefaultMaxCount.
type Options struct {
	Mode     PersistMode
	MaxCount int
}

type Importer struct {
	fetcher  randomuser.Fetcher
	store    Store
	mode     PersistMode
	maxCount int
	validate *validator.Validate
}

func New(fetcher randomuser.Fetcher, store Store, opts Options) *Importer {
	if opts.MaxCount <= 0 {
		opts.MaxCount = DefaultMaxCount
	}
	return &Importer{
		fetcher:  fetcher,
		store:    store,
		mode:     opts.Mode,
		maxCount: opts.MaxCount,
		validate: validator.New(),
	}
}

// ValidateCount checks that n is an acceptable import size.
func (im *Importer) ValidateCount(n int) error {
	if err := im.validate.Var(n, fmt.Sprintf("min=1,max=%d", im.maxCount)); err != nil {
		return fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidCount, n, im.maxCount)
	}
	return nil
}

// Import fetches n profiles and stores them. It returns the number of rows
// written, never more than n; surplus results from the remote are dropped. A fetch failure is returned as a *randomuser.FetchError and leaves
// the store untouched.
func (im *Importer) Import(ctx context.Context, n int) (int, error) {
	if err := im.ValidateCount(n); err != nil {
		return 0, err
	}
	results, err := im.fetcher.Fetch(ctx, n)
	if err != nil {
		return 0, err
	}
	if len(results) > n {
		results = results[:n]
	}
	users := make([]*models.User, 0, len(results))
	for i := range results {
		users = append(users, FromResult(&results[i]))
	}
	if im.mode == PersistLast && len(users) > 0 {
		users = users[len(users)-1:]
	}
	written, err := im.store.CreateBatch(ctx, users)
	if err != nil {
		return 0, fmt.Errorf("store %d users: %w", len(users), err)
	}
	log.Printf("imported %d users (requested %d, fetched %d, mode %s)", written, n, len(results), im.mode)
	return written, nil
}

// SeedIfEmpty imports count users when the store holds none. It returns the
// number of rows written, which is zero when the store already has data or
// count is zero.
func (im *Importer) SeedIfEmpty(ctx context.Context, count int) (int, error) {
	if count <= 0 {
		return 0, nil
	}
	existing, err := im.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}
	return im.Import(ctx, count)
}

// FromResult flattens one API result onto the local schema.
func FromResult(r *randomuser.Result) *models.User {
	return &models.User{
		Gender:       r.Gender,
		FirstName:    r.Name.First,
		LastName:     r.Name.Last,
		Phone:        r.Phone,
		Email:        r.Email,
		Country:      r.Location.Country,
		City:         r.Location.City,
		Thumbnail:    r.Picture.Thumbnail,
		LargePicture: r.Picture.Large,
	}
}
