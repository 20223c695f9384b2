package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"userCatalog/models"
)

const userColumns = `id, gender, first_name, last_name, phone, email, country, city, thumbnail, large_picture`

const insertUserSQL = `INSERT INTO users (gender, first_name, last_name, phone, email, country, city, thumbnail, large_picture) VALUES (?,?,?,?,?,?,?,?,?)`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts one user and sets its generated ID.
// Text fields are truncated to their column widths first.
func (r *UserRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if u == nil {
		return nil, errors.New("user is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	u.Truncate()
	res, err := r.db.ExecContext(ctx, insertUserSQL, insertArgs(u)...)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	u.ID = id
	return u, nil
}

// CreateBatch inserts all users in a single transaction. Either every row is
// committed or none is. IDs are set on the passed records after commit.
func (r *UserRepository) CreateBatch(ctx context.Context, users []*models.User) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertUserSQL)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare batch: %w", err)
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(users))
	for i, u := range users {
		if u == nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("batch item %d is nil", i)
		}
		u.Truncate()
		res, err := stmt.ExecContext(ctx, insertArgs(u)...)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert batch item %d: %w", i, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			_ = tx.Rollback()
			return 0, err
		}
		ids = append(ids, id)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	for i, u := range users {
		u.ID = ids[i]
	}
	return len(users), nil
}

// GetByID returns nil, nil when no row has that id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id).Scan(scanTargets(&u)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
}

// All loads every stored user ordered by id.
func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Ping checks that the underlying store is reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}

func (r *UserRepository) query(ctx context.Context, q string, args ...any) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(scanTargets(&u)...); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func insertArgs(u *models.User) []any {
	return []any{u.Gender, u.FirstName, u.LastName, u.Phone, u.Email, u.Country, u.City, u.Thumbnail, u.LargePicture}
}

// scanTargets matches the order of userColumns. Columns are nullable, so
// rows written by other tools with NULLs scan as empty strings.
func scanTargets(u *models.User) []any {
	return []any{&u.ID, nullable{&u.Gender}, nullable{&u.FirstName}, nullable{&u.LastName}, nullable{&u.Phone},
		nullable{&u.Email}, nullable{&u.Country}, nullable{&u.City}, nullable{&u.Thumbnail}, nullable{&u.LargePicture}}
}

type nullable struct{ dst *string }

func (n nullable) Scan(src any) error {
	var s sql.NullString
	if err := s.Scan(src); err != nil {
		return err
	}
	*n.dst = s.String
	return nil
}
