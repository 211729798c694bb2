package repository

import (
	"context"
	"fmt"
	"strings"

	"community-pulse/internal/model"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	UpdateFlags(ctx context.Context, id int, params model.AdminUserUpdateParams) (*model.User, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

const userColumns = `id, username, email, phone, password_hash, is_admin, is_verified_organizer, is_banned, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.IsVerifiedOrganizer,
		&user.IsBanned,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (username, email, phone, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, userColumns)

	return scanUser(r.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.Phone, user.PasswordHash,
	))
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*model.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		ORDER BY created_at DESC
	`, userColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1
	`, userColumns)

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE username = $1
	`, userColumns)

	user, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE username = $1 OR email = $2
		)
	`

	var exists bool
	err := r.pool.QueryRow(ctx, query, username, email).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *UserRepositoryImpl) UpdateFlags(ctx context.Context, id int, params model.AdminUserUpdateParams) (*model.User, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.IsAdmin != nil {
		sets = append(sets, fmt.Sprintf("is_admin = $%d", argPos))
		args = append(args, *params.IsAdmin)
		argPos++
	}

	if params.IsVerifiedOrganizer != nil {
		sets = append(sets, fmt.Sprintf("is_verified_organizer = $%d", argPos))
		args = append(args, *params.IsVerifiedOrganizer)
		argPos++
	}

	if params.IsBanned != nil {
		sets = append(sets, fmt.Sprintf("is_banned = $%d", argPos))
		args = append(args, *params.IsBanned)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, userColumns)

	user, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
