package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lightbnb/lightbnb/internal/domain"
	"github.com/lightbnb/lightbnb/pkg/database"
	apperrors "github.com/lightbnb/lightbnb/pkg/errors"
)

const userColumns = `id, name, email, password`

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserWithEmail retrieves a user by exact email address.
func (r *UserRepository) GetUserWithEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	ctx, end := database.TraceQuery(ctx, "users.get_with_email", query)
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	end(ignoreNoRows(err))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetUserWithID retrieves a user by id.
func (r *UserRepository) GetUserWithID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	ctx, end := database.TraceQuery(ctx, "users.get_with_id", query)
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	end(ignoreNoRows(err))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// AddUser inserts a user and returns the stored row. The password must
// already be hashed.
func (r *UserRepository) AddUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	ctx, end := database.TraceQuery(ctx, "users.add", query)
	u, err := scanUser(r.db.QueryRow(ctx, query, user.Name, user.Email, user.Password))
	end(err)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("user", "email", user.Email)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password); err != nil {
		return nil, err
	}
	return &u, nil
}

// ignoreNoRows keeps an expected miss from marking the span as failed.
func ignoreNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}
